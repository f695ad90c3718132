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

package coloc

import (
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var logger atomic.Pointer[logrus.Logger]

func init() {
	logger.Store(newDefaultLogger())
}

func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	if val := os.Getenv("COLOC_LOG_LEVEL"); val != "" {
		if lvl, err := logrus.ParseLevel(val); err == nil {
			l.SetLevel(lvl)
		}
	}
	return l
}

// Logger returns the logger used by every coloc package.
func Logger() *logrus.Logger {
	return logger.Load()
}

// SetLogger replaces the package logger. A nil logger restores the default.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = newDefaultLogger()
	}
	logger.Store(l)
}
