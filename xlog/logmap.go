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
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// LogLevel is the level of logging used by a PackageLogger
type LogLevel int

// Level constants, ordered from least to most verbose. CRITICAL is
// special: it is always emitted regardless of the configured level.
const (
	ERROR LogLevel = iota
	WARNING
	NOTICE
	INFO
	TRACE
	DEBUG

	// CRITICAL is deliberately out of the increasing sequence above so
	// that it always compares below any configured level and is never
	// filtered.
	CRITICAL LogLevel = -1
)

var levelNames = map[LogLevel]string{
	CRITICAL: "CRITICAL",
	ERROR:    "ERROR",
	WARNING:  "WARNING",
	NOTICE:   "NOTICE",
	INFO:     "INFO",
	TRACE:    "TRACE",
	DEBUG:    "DEBUG",
}

var levelChars = map[LogLevel]string{
	CRITICAL: "C",
	ERROR:    "E",
	WARNING:  "W",
	NOTICE:   "N",
	INFO:     "I",
	TRACE:    "T",
	DEBUG:    "D",
}

// String returns the level name, e.g. "DEBUG"
func (l LogLevel) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return "UNKNOWN"
}

// Char returns the single-letter level abbreviation, e.g. "D"
func (l LogLevel) Char() string {
	if s, ok := levelChars[l]; ok {
		return s
	}
	return "?"
}

// Set implements flag.Value so a LogLevel can be used directly as a flag
func (l *LogLevel) Set(s string) error {
	lvl, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

// ParseLevel parses a level name, single-letter abbreviation, or numeric
// string into a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch s {
	case "CRITICAL", "C":
		return CRITICAL, nil
	case "ERROR", "E":
		return ERROR, nil
	case "WARNING", "W":
		return WARNING, nil
	case "NOTICE", "N":
		return NOTICE, nil
	case "INFO", "I":
		return INFO, nil
	case "TRACE", "T":
		return TRACE, nil
	case "DEBUG", "D":
		return DEBUG, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		switch LogLevel(n) {
		case ERROR, WARNING, NOTICE, INFO, TRACE, DEBUG:
			return LogLevel(n), nil
		}
	}
	return CRITICAL, fmt.Errorf("unable to parse log level: %s", s)
}

// loggerState is the global logging state: the active formatter and the
// default level for packages that have not been configured individually.
type loggerState struct {
	sync.Mutex
	formatter  Formatter
	defaultLvl LogLevel
}

var logger = &loggerState{
	formatter:  NewStringFormatter(discard{}),
	defaultLvl: INFO,
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// SetFormatter replaces the global formatter used by every PackageLogger
func SetFormatter(f Formatter) {
	logger.Lock()
	defer logger.Unlock()
	logger.formatter = f
}

// GetFormatter returns the currently configured global formatter
func GetFormatter() Formatter {
	logger.Lock()
	defer logger.Unlock()
	return logger.formatter
}

// SetGlobalLogLevel sets the level of every registered package logger,
// including any set earlier via SetPackageLogLevel/SetRepoLogLevel, and
// the default for packages registered later
func SetGlobalLogLevel(l LogLevel) {
	logger.Lock()
	defer logger.Unlock()
	logger.defaultLvl = l
	for _, repo := range repos {
		for _, pl := range repo.loggers {
			pl.level = l
		}
	}
}

// RepoLogger groups the PackageLoggers registered under one repo (module)
// path, allowing their levels to be configured together.
type RepoLogger struct {
	repo    string
	loggers map[string]*PackageLogger
}

// SetLogLevel sets levels for the named packages in this repo; the key
// "*" sets the default applied to any package not otherwise named.
func (r *RepoLogger) SetLogLevel(levels map[string]LogLevel) {
	logger.Lock()
	defer logger.Unlock()
	def, hasDefault := levels["*"]
	for name, pl := range r.loggers {
		if l, ok := levels[name]; ok {
			pl.level = l
		} else if hasDefault {
			pl.level = def
		}
	}
}

// SetRepoLogLevel sets the default level applied to every package in
// this repo that has not been given a more specific level.
func (r *RepoLogger) SetRepoLogLevel(l LogLevel) {
	r.SetLogLevel(map[string]LogLevel{"*": l})
}

// ParseLogLevelConfig parses a comma-separated "pkg=LEVEL,pkg2=LEVEL"
// configuration string into a level map. It does not apply the result;
// call SetLogLevel with the returned map to do that.
func (r *RepoLogger) ParseLogLevelConfig(config string) (map[string]LogLevel, error) {
	result := make(map[string]LogLevel)
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid log level entry: %s", part)
		}
		lvl, err := ParseLevel(kv[1])
		if err != nil {
			return nil, err
		}
		result[kv[0]] = lvl
	}
	return result, nil
}

var repos = make(map[string]*RepoLogger)

// NewPackageLogger registers and returns the logger for the given
// repo/package pair. Calling it again for the same pair returns the
// previously registered instance.
func NewPackageLogger(repo, pkg string) *PackageLogger {
	logger.Lock()
	defer logger.Unlock()

	r, ok := repos[repo]
	if !ok {
		r = &RepoLogger{repo: repo, loggers: make(map[string]*PackageLogger)}
		repos[repo] = r
	}
	if pl, ok := r.loggers[pkg]; ok {
		return pl
	}
	pl := &PackageLogger{pkg: pkg, level: logger.defaultLvl}
	r.loggers[pkg] = pl
	return pl
}

// GetRepoLogger returns the RepoLogger for a repo that has had at least
// one package registered via NewPackageLogger.
func GetRepoLogger(repo string) (*RepoLogger, error) {
	logger.Lock()
	defer logger.Unlock()
	r, ok := repos[repo]
	if !ok {
		return nil, fmt.Errorf("no packages registered for repo: %s", repo)
	}
	return r, nil
}

// MustRepoLogger is like GetRepoLogger but panics if the repo is unknown.
func MustRepoLogger(repo string) *RepoLogger {
	r, err := GetRepoLogger(repo)
	if err != nil {
		panic(err)
	}
	return r
}

// SetRepoLogLevel sets the default level for every package in a repo.
func SetRepoLogLevel(repo string, l LogLevel) {
	r, err := GetRepoLogger(repo)
	if err != nil {
		return
	}
	r.SetLogLevel(map[string]LogLevel{"*": l})
}

// SetPackageLogLevel sets the level for one package in a repo; pkg "*"
// behaves like SetRepoLogLevel.
func SetPackageLogLevel(repo, pkg string, l LogLevel) {
	r, err := GetRepoLogger(repo)
	if err != nil {
		return
	}
	r.SetLogLevel(map[string]LogLevel{pkg: l})
}
