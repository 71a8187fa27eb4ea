package repository

import "testing"

func TestEscapeLikePattern(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"100%", `100\%`},
		{"user_id", `user\_id`},
		{`back\slash`, `back\\slash`},
		{"иван петров", "иван петров"},
		{"+79805557580", "+79805557580"},
	}
	for _, c := range cases {
		if got := escapeLikePattern(c.in); got != c.want {
			t.Errorf("escapeLikePattern(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
