package models

import "testing"

func TestFullName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"first and last", User{FirstName: "Igor", LastName: "Petrov"}, "Igor Petrov"},
		{"first only", User{FirstName: "Igor"}, "Igor "},
		{"empty falls back to email", User{Email: "i@j.k"}, "i@j.k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.FullName(); got != tt.want {
				t.Errorf("FullName = %q, want %q", got, tt.want)
			}
		})
	}
}
