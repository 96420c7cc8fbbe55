/*
Copyright 2022 Codenotary Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package source

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/codenotary/sap/pkg/api"
)

// Postgres runs a SQL query on every fetch and maps each row to one
// object. The column named id is required and becomes the object id, a
// types column (text array or comma separated text) overrides the default
// type list and a source column overrides the default source name. Every
// other column becomes a property, timestamp columns become timestamp
// values.
type Postgres struct {
	dsn    string
	query  string
	source string
	types  []string

	mu sync.Mutex
	db *sql.DB
}

// NewPostgres returns a source running query against the database at dsn.
func NewPostgres(dsn, query string) *Postgres {
	return &Postgres{
		dsn:    dsn,
		query:  query,
		source: "postgres",
		types:  []string{"row"},
	}
}

// WithSourceName sets the source assigned to rows without a source column.
func (p *Postgres) WithSourceName(source string) *Postgres {
	p.source = source
	return p
}

// WithTypes sets the type list assigned to rows without a types column.
func (p *Postgres) WithTypes(types ...string) *Postgres {
	p.types = types
	return p
}

func (p *Postgres) Fetch(ctx context.Context) ([]*api.Object, error) {
	db, err := p.database()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, p.query)
	if err != nil {
		return nil, fmt.Errorf("error running fetch query: %v", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var objects []*api.Object
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		obj, err := p.rowToObject(columns, values)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return objects, nil
}

func (p *Postgres) String() string {
	return "postgres"
}

// Close releases the connection pool. The source stays usable, the next
// fetch opens a fresh pool.
func (p *Postgres) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	db := p.db
	p.db = nil
	return db.Close()
}

func (p *Postgres) database() (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		db, err := sql.Open("postgres", p.dsn)
		if err != nil {
			return nil, fmt.Errorf("error opening postgres connection: %v", err)
		}
		p.db = db
	}
	return p.db, nil
}

func (p *Postgres) rowToObject(columns []string, values []interface{}) (*api.Object, error) {
	obj := api.NewObject("", p.types, p.source)
	for i, column := range columns {
		v := normalizeSQLValue(values[i])
		switch column {
		case "id":
			obj.ID = sqlValueToID(v)
			if obj.ID == "" {
				return nil, fmt.Errorf("%w: column id must be a non empty string or integer", api.ErrInvalidObject)
			}
		case "source":
			if s, ok := v.(string); ok && s != "" {
				obj.Source = s
			}
		case "types":
			types, err := parseTypesColumn(v)
			if err != nil {
				return nil, err
			}
			if len(types) > 0 {
				obj.Types = types
			}
		default:
			obj.Set(column, v)
		}
	}
	if obj.ID == "" {
		return nil, fmt.Errorf("%w: fetch query must return an id column", api.ErrInvalidObject)
	}
	return obj, nil
}

func normalizeSQLValue(v interface{}) interface{} {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case time.Time:
		return api.NewTimestamp(x)
	default:
		return v
	}
}

func sqlValueToID(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return ""
	}
}

func parseTypesColumn(v interface{}) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: column types must be text", api.ErrInvalidObject)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		var arr pq.StringArray
		if err := arr.Scan([]byte(s)); err != nil {
			return nil, fmt.Errorf("error parsing types column: %v", err)
		}
		return []string(arr), nil
	}

	parts := strings.Split(s, ",")
	types := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			types = append(types, part)
		}
	}
	return types, nil
}
