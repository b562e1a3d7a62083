package middlewares

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A record that replays must never let the handler run a second time;
// a record that is still pending must never block the first run.
func TestShouldReplay(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   []byte
		want   bool
	}{
		{"completed record replays", 200, []byte(`{"payment_id":"p1"}`), true},
		{"completed error response replays too", 409, []byte(`{"message":"unit already billed"}`), true},
		{"empty stored body still replays", 204, []byte{}, true},
		{"pending record runs the handler", 0, nil, false},
		{"status without a stored body runs the handler", 200, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, shouldReplay(tc.status, tc.body))
		})
	}
}
