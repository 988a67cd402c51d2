package capability

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"unsupported", Unsupported("no clipboard"), KindUnsupported},
		{"dependency missing", DependencyMissing("xclip not found"), KindDependencyMissing},
		{"permission denied", PermissionDenied("cannot read /etc/shadow", io.ErrClosedPipe), KindPermissionDenied},
		{"io", IOError(io.ErrUnexpectedEOF), KindIO},
		{"network", NetworkErrorf("no route to %s", "example.com"), KindNetwork},
		{"timeout", TimeoutError(), KindTimeout},
		{"other", Otherf("tool exited with %d", 1), KindOther},
		{"wrapped", fmt.Errorf("probe: %w", TimeoutError()), KindTimeout},
		{"foreign error", errors.New("plain"), KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorMessageIncludesKind(t *testing.T) {
	assert.Equal(t, "unsupported: no clipboard", Unsupported("no clipboard").Error())
	assert.Equal(t, "timeout", TimeoutError().Error())

	wrapped := IOError(io.ErrUnexpectedEOF)
	assert.Contains(t, wrapped.Error(), "io error")
	assert.ErrorIs(t, wrapped, io.ErrUnexpectedEOF)
}
