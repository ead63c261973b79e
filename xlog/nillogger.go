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

// NilLogger discards everything logged to it. Useful for tests and for
// libraries that embed a Logger field with no user-supplied value.
type NilLogger struct{}

// NewNilLogger returns a Logger that discards all output
func NewNilLogger() *NilLogger {
	return &NilLogger{}
}

// WithValues returns the receiver unchanged; there is nothing to record values onto
func (n *NilLogger) WithValues(keysAndValues ...interface{}) Logger { return n }

// Fatal discards the message
func (n *NilLogger) Fatal(args ...interface{}) {}

// Fatalf discards the message
func (n *NilLogger) Fatalf(format string, args ...interface{}) {}

// Panic discards the message and does not panic
func (n *NilLogger) Panic(args ...interface{}) {}

// Panicf discards the message and does not panic
func (n *NilLogger) Panicf(format string, args ...interface{}) {}

// Info discards the message
func (n *NilLogger) Info(entries ...interface{}) {}

// Infof discards the message
func (n *NilLogger) Infof(format string, args ...interface{}) {}

// Error discards the message
func (n *NilLogger) Error(entries ...interface{}) {}

// Errorf discards the message
func (n *NilLogger) Errorf(format string, args ...interface{}) {}

// Warning discards the message
func (n *NilLogger) Warning(entries ...interface{}) {}

// Warningf discards the message
func (n *NilLogger) Warningf(format string, args ...interface{}) {}

// Notice discards the message
func (n *NilLogger) Notice(entries ...interface{}) {}

// Noticef discards the message
func (n *NilLogger) Noticef(format string, args ...interface{}) {}

// Debug discards the message
func (n *NilLogger) Debug(entries ...interface{}) {}

// Debugf discards the message
func (n *NilLogger) Debugf(format string, args ...interface{}) {}

// Trace discards the message
func (n *NilLogger) Trace(entries ...interface{}) {}

// Tracef discards the message
func (n *NilLogger) Tracef(format string, args ...interface{}) {}

// KV discards the message
func (n *NilLogger) KV(level LogLevel, entries ...interface{}) {}

// Print discards the message; provided for stdlib log compatibility
func (n *NilLogger) Print(args ...interface{}) {}

// Println discards the message; provided for stdlib log compatibility
func (n *NilLogger) Println(args ...interface{}) {}

// Printf discards the message; provided for stdlib log compatibility
func (n *NilLogger) Printf(format string, args ...interface{}) {}

var _ Logger = (*NilLogger)(nil)
