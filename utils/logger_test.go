/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"trace":   logrus.TraceLevel,
		"DEBUG":   logrus.DebugLevel,
		"":        logrus.InfoLevel,
		" warn ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"bogus":   logrus.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), "level %q", in)
	}
}

func TestNewLoggerIsRegisteredOnce(t *testing.T) {
	a := NewLogger("REGISTRY_TEST")
	b := NewLogger("REGISTRY_TEST")
	assert.Same(t, a, b)

	assert.True(t, SetLoggerLevel("REGISTRY_TEST", "error"))
	assert.Equal(t, logrus.ErrorLevel, a.GetLevel())
	assert.False(t, SetLoggerLevel("NOT_REGISTERED", "debug"))
}

func TestJSONLogFormatterLiftsAccessFields(t *testing.T) {
	f := &JSONLogFormatter{LoggerName: "HTTP"}
	entry := &logrus.Entry{
		Time:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "request completed",
		Data: logrus.Fields{
			"request_id":  "abc",
			"req_method":  "GET",
			"req_uri":     "/api/v1/stories",
			"status_code": 200,
			"error":       errors.New("boom"),
			"extra":       7,
		},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &rec))
	assert.Equal(t, "HTTP", rec["model"])
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "abc", rec["request_id"])
	assert.Equal(t, "GET", rec["method"])
	assert.Equal(t, "/api/v1/stories", rec["path"])
	assert.EqualValues(t, 200, rec["status_code"])
	fields := rec["fields"].(map[string]interface{})
	assert.Equal(t, "boom", fields["error"])
	assert.EqualValues(t, 7, fields["extra"])
}

func TestLog4jColorFormatterIncludesFields(t *testing.T) {
	f := &Log4jColorFormatter{LoggerName: "DATABASE", NameWidth: 4}
	out, err := f.Format(&logrus.Entry{
		Time:    time.Now(),
		Level:   logrus.WarnLevel,
		Message: "slow query",
		Data:    logrus.Fields{"b": 2, "a": 1},
	})
	require.NoError(t, err)

	line := string(out)
	assert.Contains(t, line, "DATA")
	assert.Contains(t, line, "slow query a=1 b=2")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestConfigureOutput(t *testing.T) {
	var buf bytes.Buffer
	ConfigureOutput(&buf)
	defer ConfigureOutput(os.Stdout)

	l := NewLogger("OUTPUT_TEST")
	l.SetLevel(logrus.InfoLevel)
	l.Info("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("UTILS_TEST_BOOL", "true")
	t.Setenv("UTILS_TEST_INT", "42")
	t.Setenv("UTILS_TEST_BAD_INT", "x")

	assert.True(t, EnvDefaultBool("UTILS_TEST_BOOL", false))
	assert.False(t, EnvDefaultBool("UTILS_TEST_MISSING", false))
	assert.Equal(t, 42, EnvDefaultInt("UTILS_TEST_INT", 1))
	assert.Equal(t, 1, EnvDefaultInt("UTILS_TEST_BAD_INT", 1))
	assert.Equal(t, "dflt", EnvDefaultString("UTILS_TEST_MISSING", "dflt"))
}
