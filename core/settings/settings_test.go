package settings

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typecontrol/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreSane(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.settings")
	defer teardown()
	//
	s := Defaults()
	assert.Empty(t, s.Validate())
	assert.Equal(t, SizeParams{
		UseCustom:     false,
		CustomSizes:   "12,14,16,18,21,24,30,36,48,60,72,128",
		BaseSize:      12,
		Ratio:         1.25,
		MaxLetterSize: 300,
	}, s.SizeParams())
	assert.Equal(t, CurveParams{Strength: 15, Power: 2}, s.CurveParams())
}

func TestValidateReportsDegenerateSettings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.settings")
	defer teardown()
	//
	s := Defaults()
	s.BaseSize = 0
	s.Ratio = -1
	s.BezierPower = 0
	assert.Len(t, s.Validate(), 3)
	s.UseCustom = true // base size and ratio are not used anymore
	assert.Len(t, s.Validate(), 1)
	s = Defaults()
	s.Weight = 950
	assert.Len(t, s.Validate(), 1)
}

func TestLoadMissingProfileYieldsDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.settings")
	defer teardown()
	//
	s, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoadPartialProfiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.settings")
	defer teardown()
	//
	dir := t.TempDir()
	profiles := map[string]string{
		"p.toml": "baseSize = 16.0\nratio = 1.5\nuseCustom = true\n",
		"p.yaml": "baseSize: 16\nratio: 1.5\nuseCustom: true\n",
		"p.json": `{"baseSize": 16, "ratio": 1.5, "useCustom": true}`,
	}
	for name, content := range profiles {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		s, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, 16.0, s.BaseSize, name)
		assert.Equal(t, 1.5, s.Ratio, name)
		assert.True(t, s.UseCustom, name)
		// untouched keys keep their defaults
		assert.Equal(t, 300.0, s.MaxLetterSize, name)
		assert.Equal(t, 15.0, s.BezierStrength, name)
	}
}

func TestLoadMalformedProfile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.settings")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"baseSize": `), 0644))
	s, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, core.EFORMAT, core.Code(err))
	assert.Equal(t, Defaults(), s)
}

func TestSaveAndReload(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.settings")
	defer teardown()
	//
	s := Defaults()
	s.UseCustom = true
	s.CustomSizes = "10,20,40"
	s.LetterSpacing = -0.5
	for _, name := range []string{"s.toml", "s.yml", "s.json"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, Save(path, s), name)
		reloaded, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, s, reloaded, name)
	}
	err := Save(filepath.Join(t.TempDir(), "s.ini"), s)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.settings")
	defer teardown()
	//
	store := NewStore(Defaults())
	var seen []float64
	cancel := store.Subscribe(func(s Settings) {
		seen = append(seen, s.Ratio)
	})
	store.Update(func(s *Settings) { s.Ratio = 1.5 })
	store.Set(Settings{Ratio: 2})
	cancel()
	store.Reset()
	assert.Equal(t, []float64{1.5, 2}, seen)
	assert.Equal(t, Defaults(), store.Get())
}

func TestStoreConcurrentUpdates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typecontrol.settings")
	defer teardown()
	//
	store := NewStore(Settings{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update(func(s *Settings) { s.Weight++ })
			_ = store.Get()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, store.Get().Weight)
}
