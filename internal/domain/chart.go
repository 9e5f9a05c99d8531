package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalidChartID = errors.New("chart_id must be a string or a number")

// ChartID is the caller-supplied grouping key of a chart. It is either a string or a
// number and is handed to the graph store unchanged.
type ChartID struct {
	value any
}

func StringChartID(s string) ChartID { return ChartID{value: s} }
func IntChartID(n int64) ChartID     { return ChartID{value: n} }

// Value is the store parameter: string, int64 or float64. Zero ChartID yields nil.
func (id ChartID) Value() any { return id.value }

func (id ChartID) IsZero() bool { return id.value == nil }

func (id ChartID) String() string {
	switch v := id.value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func (id *ChartID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ErrInvalidChartID
	}
	switch c := b[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		id.value = s
	case c == '-' || (c >= '0' && c <= '9'):
		n := json.Number(b)
		if bytes.IndexAny(b, ".eE") < 0 {
			// Integral literals must fit int64; a float fallback would merge distinct ids.
			i, err := n.Int64()
			if err != nil {
				return ErrInvalidChartID
			}
			id.value = i
			return nil
		}
		f, err := n.Float64()
		if err != nil {
			return fmt.Errorf("chart_id: %w", err)
		}
		id.value = f
	default:
		return ErrInvalidChartID
	}
	return nil
}

func (id ChartID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// Position is one celestial body placed in a chart.
type Position struct {
	Planet string  `json:"planet"`
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
}

// Aspect links two positions of the same chart by planet name.
type Aspect struct {
	Planet1 string  `json:"planet1"`
	Planet2 string  `json:"planet2"`
	Type    string  `json:"aspect"`
	Orb     float64 `json:"orb"`
}

type Chart struct {
	ID        ChartID    `json:"chart_id"`
	Positions []Position `json:"positions"`
	Aspects   []Aspect   `json:"aspects"`
}
