package ptrx

import "time"

// String devuelve un puntero al string dado
func String(s string) *string { return &s }

// Int devuelve un puntero al int dado
func Int(i int) *int { return &i }

// Bool devuelve un puntero al bool dado
func Bool(b bool) *bool { return &b }

// Time devuelve un puntero al time.Time dado
func Time(t time.Time) *time.Time { return &t }

// Deref devuelve el valor apuntado o el zero value si es nil
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
