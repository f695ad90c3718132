// Copyright 2025 go-coloc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/ajroetker/go-coloc/coloc"
)

const maxLineBytes = 16 << 20

// readValues parses numbers separated by whitespace or commas. Text after
// '#' on a line is ignored.
func readValues(r io.Reader, name string) ([]float64, error) {
	var values []float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for line := 1; sc.Scan(); line++ {
		text, _, _ := strings.Cut(sc.Text(), "#")
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return unicode.IsSpace(r) || r == ','
		})
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, line, err)
			}
			values = append(values, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return values, nil
}

func readFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readValues(f, path)
}

// convertPixels converts samples to T, rejecting values T cannot hold.
func convertPixels[T coloc.Real](values []float64) ([]T, error) {
	lowest, highest := coloc.TypeRange[T]()
	var zero T
	integral := true
	switch any(zero).(type) {
	case float32, float64:
		integral = false
	}

	out := make([]T, len(values))
	for i, v := range values {
		if v < lowest || v > highest || (integral && v != math.Trunc(v)) {
			return nil, fmt.Errorf("sample %d: %v is not a valid %T pixel", i, v, zero)
		}
		out[i] = T(v)
	}
	return out, nil
}
