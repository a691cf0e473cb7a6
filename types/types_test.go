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

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRequestDefaults(t *testing.T) {
	p := NewPageRequestWithOrders(0, 0, []string{"id ASC"})
	assert.Equal(t, 1, p.GetPage())
	assert.Equal(t, DefaultPageSize, p.GetPageSize())
	assert.Equal(t, 0, p.GetOffset())

	p = NewPageRequest(3, 1000, NewQueryFilter("author = ?", "ann"), nil)
	assert.Equal(t, MaxPageSize, p.GetPageSize())
	assert.Equal(t, 200, p.GetOffset())
	assert.Equal(t, "author = ?", p.GetFilter().Schema)
	assert.Equal(t, []interface{}{"ann"}, p.GetFilter().Args)
}

func TestPaginationPages(t *testing.T) {
	p := NewDefaultPagination[int](1, 10)
	assert.Equal(t, 0, p.Pages())
	p.Total = 21
	assert.Equal(t, 3, p.Pages())
}

func TestStatus(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusForCode(201))
	assert.Equal(t, StatusFail, StatusForCode(404))
	assert.Equal(t, StatusError, StatusForCode(503))

	assert.Equal(t, "fail", StatusFail.String())
	assert.Equal(t, IllegalName, Status(9).Name())
	assert.Equal(t, IllegalValue, Status(-2).Number())

	b, err := json.Marshal(map[string]Status{"status": StatusError})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error"}`, string(b))
}
