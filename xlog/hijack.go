// Copyright 2015 CoreOS, Inc.
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

package xlog

import (
	"log"
	"strings"
)

// hijackLogger receives anything written through the standard library's
// "log" package so that third-party code using log.Println etc. still
// ends up going through the configured Formatter.
var hijackLogger = NewPackageLogger("log", "stdlib")

type hijackWriter struct{}

func (hijackWriter) Write(p []byte) (int, error) {
	hijackLogger.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func init() {
	log.SetOutput(hijackWriter{})
}
