package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLanguageFor(t *testing.T) {
	assert.Equal(t, "ukrainian", LanguageFor("UA"))
	assert.Equal(t, "german", LanguageFor("at"))
	assert.Equal(t, "english", LanguageFor("JP"))
	assert.Equal(t, "english", LanguageFor(""))
}

func TestFromViper(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, Default(), FromViper(viper.New()))
	})

	t.Run("country implies language", func(t *testing.T) {
		v := viper.New()
		v.Set(KeyRegionCC, "ua")
		assert.Equal(t, Region{CC: "UA", Lang: "ukrainian"}, FromViper(v))
	})

	t.Run("explicit language wins", func(t *testing.T) {
		v := viper.New()
		v.Set(KeyRegionCC, "DE")
		v.Set(KeyRegionLang, "English")
		assert.Equal(t, Region{CC: "DE", Lang: "english"}, FromViper(v))
	})
}
