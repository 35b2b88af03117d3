package inventory

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Month clave de agrupación mensual (año, mes) en UTC.
// Se serializa como "YYYY-MM" solo en los bordes (JSON, CSV, reportes).
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf devuelve el mes calendario UTC de t.
func MonthOf(t time.Time) Month {
	u := t.UTC()
	return Month{Year: u.Year(), Month: u.Month()}
}

// ParseMonth interpreta "YYYY-MM". Acepta años de más de 4 dígitos.
func ParseMonth(s string) (Month, error) {
	i := strings.LastIndex(s, "-")
	if i <= 0 {
		return Month{}, fmt.Errorf("mes inválido %q: formato esperado YYYY-MM", s)
	}
	year, err := strconv.Atoi(s[:i])
	if err != nil {
		return Month{}, fmt.Errorf("mes inválido %q: año: %w", s, err)
	}
	month, err := strconv.Atoi(s[i+1:])
	if err != nil || len(s[i+1:]) != 2 || month < 1 || month > 12 {
		return Month{}, fmt.Errorf("mes inválido %q: mes fuera de rango", s)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// Before compara numéricamente (nunca como string).
func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// Start primer instante del mes en UTC.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// MarshalJSON serializa como "YYYY-MM".
func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON acepta "YYYY-MM".
func (m *Month) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
