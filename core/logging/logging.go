/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package logging builds the zerolog loggers used by the server and the CLI.
package logging

import (
	"context"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

// ReqIDKey holds the request id in a request context
const ReqIDKey ctxKey = "reqID"

// Options controls the logger built by New.
type Options struct {
	// Level is a zerolog level name, "info" when empty
	Level string
	// Pretty switches to human readable console output on stderr
	Pretty bool
	// Out receives JSON lines, os.Stdout when nil
	Out io.Writer
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFieldName = "time"
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		function := ""
		if fun := runtime.FuncForPC(pc); fun != nil {
			funName := fun.Name()
			if slash := strings.LastIndex(funName, "/"); slash > 0 {
				funName = funName[slash+1:]
			}
			function = " " + funName + "()"
		}
		return file + ":" + strconv.Itoa(line) + function
	}
	l := New(Options{})
	zerolog.DefaultContextLogger = &l
}

// New creates a logger. An unknown level falls back to info.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
		if opts.Out != nil {
			out = zerolog.ConsoleWriter{Out: opts.Out, NoColor: true}
		}
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger().Hook(CallerHook{})
}

// CallerHook adds the caller of the logging statement to every event
type CallerHook struct{}

func (h CallerHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Caller(3)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ReqIDKey).(string)
	return id
}
