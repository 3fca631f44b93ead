package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/perronapp/perron/internal/api/journey"
)

func TestServiceLabel(t *testing.T) {
	tests := []struct {
		name    string
		product *journey.ServiceProduct
		want    *string
	}{
		{
			name:    "formatted name verbatim",
			product: &journey.ServiceProduct{NameFormatted: strp("S 4"), Name: strp("S 4 15427")},
			want:    strp("S 4"),
		},
		{
			name:    "raw name shortened to two tokens",
			product: &journey.ServiceProduct{Name: strp("S 4 15427")},
			want:    strp("S 4"),
		},
		{
			name:    "two token raw name kept",
			product: &journey.ServiceProduct{Name: strp("IC 1")},
			want:    strp("IC 1"),
		},
		{
			name:    "single token raw name kept",
			product: &journey.ServiceProduct{Name: strp("ICE")},
			want:    strp("ICE"),
		},
		{
			name: "submode and line joined",
			product: &journey.ServiceProduct{
				VehicleMode: &journey.VehicleMode{VehicleSubModeShortName: strp("S")},
				Line:        strp("4"),
			},
			want: strp("S 4"),
		},
		{
			name:    "submode without line stays absent",
			product: &journey.ServiceProduct{VehicleMode: &journey.VehicleMode{VehicleSubModeShortName: strp("S")}},
			want:    nil,
		},
		{
			name:    "blank formatted name falls through",
			product: &journey.ServiceProduct{NameFormatted: strp("  "), Name: strp("RE 2 4711")},
			want:    strp("RE 2"),
		},
		{
			name:    "empty product",
			product: &journey.ServiceProduct{},
			want:    nil,
		},
		{
			name:    "absent product",
			product: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serviceLabel(tt.product)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestOperatorName(t *testing.T) {
	assert.Nil(t, operatorName(nil))
	assert.Nil(t, operatorName(&journey.ServiceProduct{}))
	assert.Nil(t, operatorName(&journey.ServiceProduct{Operator: &journey.Operator{}}))

	product := &journey.ServiceProduct{Operator: &journey.Operator{Name: strp("SBB")}}
	assert.Equal(t, "SBB", *operatorName(product))
}

func TestDirectionName(t *testing.T) {
	t.Run("service journey directions win", func(t *testing.T) {
		leg := &journey.Leg{
			ServiceJourney: &journey.ServiceJourney{
				Directions: []journey.Direction{{Name: strp("Zug")}},
			},
			Directions: []journey.Direction{{Name: strp("Luzern")}},
		}
		assert.Equal(t, "Zug", *directionName(leg))
	})

	t.Run("leg directions as fallback", func(t *testing.T) {
		leg := &journey.Leg{
			ServiceJourney: &journey.ServiceJourney{},
			Directions:     []journey.Direction{{Name: strp("Luzern")}},
		}
		assert.Equal(t, "Luzern", *directionName(leg))
	})

	t.Run("no directions at all", func(t *testing.T) {
		assert.Nil(t, directionName(&journey.Leg{}))
	})
}
