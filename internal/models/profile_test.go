package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDriver() *Profile {
	model, color, plate := "Cobalt", "White", "01a123bc"
	return &Profile{
		UserID:   101,
		Role:     RoleDriver,
		FullName: "Aziz Karimov",
		Phone:    "+998901234567",
		CarModel: &model,
		CarColor: &color,
		CarPlate: &plate,
	}
}

func TestProfileValidate(t *testing.T) {
	t.Run("Driver Plate Uppercased", func(t *testing.T) {
		p := validDriver()
		require.NoError(t, p.Validate())
		assert.Equal(t, "01A123BC", *p.CarPlate)
	})

	t.Run("Driver Missing Vehicle Fields", func(t *testing.T) {
		for _, strip := range []func(*Profile){
			func(p *Profile) { p.CarModel = nil },
			func(p *Profile) { p.CarColor = nil },
			func(p *Profile) { p.CarPlate = nil },
		} {
			p := validDriver()
			strip(p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		}
	})

	t.Run("Plate Length Bounds", func(t *testing.T) {
		for plate, ok := range map[string]bool{
			"01A123B":     true,  // 7
			"01A123BCDE":  true,  // 10
			"01A123":      false, // 6
			"01A123BCDEF": false, // 11
		} {
			p := validDriver()
			pl := plate
			p.CarPlate = &pl
			err := p.Validate()
			if ok {
				assert.NoError(t, err, "plate %q", plate)
			} else {
				assert.Error(t, err, "plate %q", plate)
			}
		}
	})

	t.Run("Passenger Vehicle Fields Cleared", func(t *testing.T) {
		p := validDriver()
		p.Role = RolePassenger
		require.NoError(t, p.Validate())
		assert.Nil(t, p.CarModel)
		assert.Nil(t, p.CarColor)
		assert.Nil(t, p.CarPlate)
	})

	t.Run("Short Name", func(t *testing.T) {
		p := validDriver()
		p.FullName = "Al"
		assert.Error(t, p.Validate())
	})

	t.Run("Bad Role", func(t *testing.T) {
		p := validDriver()
		p.Role = "dispatcher"
		assert.Error(t, p.Validate())
	})

	t.Run("Bad User ID", func(t *testing.T) {
		p := validDriver()
		p.UserID = 0
		assert.Error(t, p.Validate())
	})
}
