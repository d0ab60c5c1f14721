package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewBrowse, "browse"},
		{ViewDetail, "detail"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewChanged(t *testing.T) {
	msg := ViewChanged{View: ViewDetail}

	assert.Equal(t, ViewDetail, msg.View)
}

func TestProductsLoaded_CarriesError(t *testing.T) {
	err := errors.New("catálogo roto")
	msg := ProductsLoaded{Err: err}

	assert.Nil(t, msg.Products)
	assert.ErrorIs(t, msg.Err, err)
}
