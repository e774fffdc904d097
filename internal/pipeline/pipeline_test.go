package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenevan/sde2sql/pkg/config"
	"github.com/zenevan/sde2sql/pkg/metrics"
	"github.com/zenevan/sde2sql/pkg/testutil"
)

// fixtureSDE builds a small but complete export: two regions, landmarks,
// one fsd document and one bsd document.
func fixtureSDE(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	testutil.WriteFile(t, root, "universe/eve/Domain/region.yaml", testutil.RegionYAML(10000043, "Domain"))
	testutil.WriteFile(t, root, "universe/eve/Domain/Throne Worlds/constellation.yaml", testutil.ConstellationYAML(20000322, "Throne Worlds"))
	testutil.WriteFile(t, root, "universe/eve/Domain/Throne Worlds/Amarr/solarsystem.yaml", testutil.SolarSystemYAML(30002187, "Amarr", 1.0, "B"))

	testutil.WriteFile(t, root, "universe/eve/TheForge/region.yaml", testutil.RegionYAML(10000002, "The Forge"))
	testutil.WriteFile(t, root, "universe/eve/TheForge/Kimotoro/constellation.yaml", testutil.ConstellationYAML(20000020, "Kimotoro"))
	testutil.WriteFile(t, root, "universe/eve/TheForge/Kimotoro/Jita/solarsystem.yaml", testutil.SolarSystemYAML(30000142, "Jita", 0.9459, "B"))

	testutil.WriteFile(t, root, "universe/landmarks/landmarks.yaml", `11:
  name:
    en: Caldari Monument
  description:
    en: A monument.
  locationID: 30000142
  x: 1.5
  y: -2.5
  z: 3.0
`)

	testutil.WriteFile(t, root, "fsd/agents.yaml", `3009:
  agentTypeID: 2
  corporationID: 1000002
  divisionID: 24
  isLocator: false
  level: 1
  locationID: 60000004
3008:
  agentTypeID: 2
  corporationID: 1000002
  divisionID: 5
  isLocator: true
  level: 3
  locationID: 60000004
`)

	testutil.WriteFile(t, root, "bsd/invNames.yaml", `- itemID: 30000142
  itemName: Jita
- itemID: 30002187
  itemName: Amarr
`)

	return root
}

func newTestRunner(t *testing.T, root string) (*Runner, *config.Config) {
	t.Helper()

	cfg := config.New()
	cfg.InputRoot = root
	cfg.OutputDir = filepath.Join(t.TempDir(), "sql")
	require.NoError(t, cfg.Validate())

	runner, err := New(cfg, metrics.NewCollector())
	require.NoError(t, err)
	return runner, cfg
}

func readOutput(t *testing.T, cfg *config.Config, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, filepath.FromSlash(rel)))
	require.NoError(t, err, rel)
	return string(data)
}

func TestRunConvertsAllFamilies(t *testing.T) {
	runner, cfg := newTestRunner(t, fixtureSDE(t))

	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	summary, err := runner.Run(ctx)
	require.NoError(t, err)

	regions := readOutput(t, cfg, "universe/eve_regions.sql")
	assert.Contains(t, regions, "INSERT INTO eve_regions (region_id, region_name)")
	assert.Contains(t, regions, "(10000043, 'Domain')")
	assert.Contains(t, regions, "(10000002, 'The Forge')")

	constellations := readOutput(t, cfg, "universe/eve_constellations.sql")
	assert.Contains(t, constellations, "(20000322, 'Throne Worlds', 10000043)")

	landmarks := readOutput(t, cfg, "universe/eve_landmarks.sql")
	assert.Contains(t, landmarks, "INSERT INTO eve_landmarks")
	assert.Contains(t, landmarks, "'Caldari Monument'")

	agents := readOutput(t, cfg, "fsd/eve_agents.sql")
	assert.Contains(t, agents, "(3008, 1000002, 5, 3, 60000004, 2, 1)")
	assert.Less(t, strings.Index(agents, "(3008,"), strings.Index(agents, "(3009,"),
		"entries are ordered by ascending key")

	names := readOutput(t, cfg, "bsd/eve_inv_names.sql")
	assert.Contains(t, names, "(30000142, 'Jita')")

	assert.Equal(t, int64(2), summary.TableRows["eve_agents"])
	assert.Equal(t, int64(2), summary.TableRows["eve_inv_names"])
	assert.Equal(t, int64(2), summary.TableRows["eve_solar_systems"])
	assert.Positive(t, summary.FilesWritten)
}

func TestRunSplitsSolarSystemsPerRegion(t *testing.T) {
	runner, cfg := newTestRunner(t, fixtureSDE(t))

	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	_, err := runner.Run(ctx)
	require.NoError(t, err)

	domain := readOutput(t, cfg, "universe/eve_solar_systems_Domain.sql")
	forge := readOutput(t, cfg, "universe/eve_solar_systems_The_Forge.sql")

	assert.Contains(t, domain, "(30002187, 'Amarr', 20000322, 'Throne Worlds', 10000043, 'Domain', 1, 'B')")
	assert.Contains(t, forge, "(30000142, 'Jita', 20000020, 'Kimotoro', 10000002, 'The Forge', 0.9459, 'B')")

	assert.Contains(t, domain, "DELETE FROM eve_solar_systems;",
		"first region file clears the table")
	assert.NotContains(t, forge, "DELETE FROM",
		"later region files append")
}

func TestRunKeepsSameNamedRegionsApart(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "universe/eve/ShadowA/region.yaml", testutil.RegionYAML(11000001, "Shadow"))
	testutil.WriteFile(t, root, "universe/eve/ShadowA/CloudRing/constellation.yaml", testutil.ConstellationYAML(21000001, "Cloud Ring"))
	testutil.WriteFile(t, root, "universe/eve/ShadowA/CloudRing/Alpha/solarsystem.yaml", testutil.SolarSystemYAML(31000001, "Alpha", -0.1, "C"))

	testutil.WriteFile(t, root, "universe/void/ShadowB/region.yaml", testutil.RegionYAML(14000001, "Shadow"))
	testutil.WriteFile(t, root, "universe/void/ShadowB/DarkRing/constellation.yaml", testutil.ConstellationYAML(24000001, "Dark Ring"))
	testutil.WriteFile(t, root, "universe/void/ShadowB/DarkRing/Beta/solarsystem.yaml", testutil.SolarSystemYAML(34000001, "Beta", -0.9, "D"))

	runner, cfg := newTestRunner(t, root)

	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	_, err := runner.Run(ctx)
	require.NoError(t, err)

	first := readOutput(t, cfg, "universe/eve_solar_systems_Shadow.sql")
	second := readOutput(t, cfg, "universe/eve_solar_systems_Shadow_14000001.sql")

	assert.Contains(t, first, "(31000001, 'Alpha',")
	assert.NotContains(t, first, "(34000001,")
	assert.Contains(t, second, "(34000001, 'Beta',")
	assert.NotContains(t, second, "(31000001,")

	assert.Contains(t, first, "DELETE FROM eve_solar_systems;")
	assert.NotContains(t, second, "DELETE FROM")
}

func TestRunSkipsMissingSources(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "fsd/categories.yaml", `6:
  name:
    en: Ship
  published: true
`)

	runner, cfg := newTestRunner(t, root)

	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	summary, err := runner.Run(ctx)
	require.NoError(t, err, "missing inputs are non-fatal")

	categories := readOutput(t, cfg, "fsd/eve_categories.sql")
	assert.Contains(t, categories, "(6, 'Ship', 1)")

	assert.Positive(t, summary.Skipped)
	_, statErr := os.Stat(filepath.Join(cfg.OutputDir, "fsd", "eve_agents.sql"))
	assert.True(t, os.IsNotExist(statErr), "kinds without sources write nothing")
}

func TestRunAbortsOnMalformedSource(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "fsd/agents.yaml", "3008: [unclosed\n")

	runner, _ := newTestRunner(t, root)

	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	_, err := runner.Run(ctx)
	require.Error(t, err)
}

func TestRunWritesReport(t *testing.T) {
	root := fixtureSDE(t)
	runner, cfg := newTestRunner(t, root)
	cfg.ReportPath = filepath.Join(t.TempDir(), "report.json")

	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	_, err := runner.Run(ctx)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"table_rows\"")
	assert.Contains(t, string(data), "eve_agents")
}

func TestRegistryExposesCatalog(t *testing.T) {
	runner, _ := newTestRunner(t, t.TempDir())
	assert.Contains(t, runner.Registry().Kinds(), "agents")
	assert.Contains(t, runner.Registry().Kinds(), "invNames")
}
