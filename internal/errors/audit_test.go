package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AuditError
		want string
	}{
		{
			name: "plain",
			err:  NewInputNotFound(`sheet "Nope" not found`),
			want: `[input_not_found] sheet "Nope" not found`,
		},
		{
			name: "with suggestions",
			err:  NewColumnNotFound("Fil", []string{"File", "Filename"}),
			want: `[column_not_found] column "Fil" not found (did you mean one of: File, Filename?)`,
		},
		{
			name: "with cause",
			err:  NewIOFailure("save report", errors.New("disk full")),
			want: "[io_failure] save report failed: disk full",
		},
		{
			name: "nil",
			err:  nil,
			want: "unknown audit error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestNewNoValidColumns(t *testing.T) {
	warnings := []*AuditError{
		NewColumnNotFound("Price", nil),
		NewColumnNotFound("Qty", []string{"Qty."}),
	}
	err := NewNoValidColumns(warnings)

	assert.Equal(t, KindNoValidColumns, err.Kind)
	assert.ErrorContains(t, err, `column "Price" not found`)
	assert.ErrorContains(t, err, `column "Qty" not found`)

	var target *AuditError
	assert.True(t, errors.As(err.Unwrap(), &target))
	assert.Equal(t, KindColumnNotFound, target.Kind)

	assert.Nil(t, NewNoValidColumns(nil).Cause)
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("run 2: %w", NewSelectionInvalid("7 is out of range"))

	assert.Equal(t, KindSelectionInvalid, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindSelectionInvalid))
	assert.False(t, IsKind(wrapped, KindIOFailure))

	joined := errors.Join(errors.New("other"), NewConfigInvalid(errors.New("no rules")))
	assert.Equal(t, KindConfigInvalid, KindOf(joined))

	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.False(t, IsKind(nil, KindIOFailure))
}
