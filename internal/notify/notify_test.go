package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageFor(t *testing.T) {
	tests := []struct {
		kind        Kind
		wantSummary string
	}{
		{KindWorkComplete, "Work Session Complete!"},
		{KindBreakComplete, "Break Complete!"},
		{KindLongBreakComplete, "Long Break Complete!"},
		{Kind("bogus"), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			summary, body := messageFor(tt.kind)
			assert.Equal(t, tt.wantSummary, summary)
			if tt.wantSummary != "" {
				assert.NotEmpty(t, body)
			}
		})
	}
}

func TestNopDiscards(t *testing.T) {
	var notifier Notifier = Nop{}
	notifier.Notify(KindWorkComplete)
}
