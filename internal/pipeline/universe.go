package pipeline

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/zenevan/sde2sql/pkg/schema"
	"github.com/zenevan/sde2sql/pkg/sde"
	"github.com/zenevan/sde2sql/pkg/sqlgen"
	stringpool "github.com/zenevan/sde2sql/pkg/strings"
)

var (
	regionTable = schema.TableSpec{
		Table:   "eve_regions",
		Columns: []string{"region_id", "region_name"},
	}
	constellationTable = schema.TableSpec{
		Table:   "eve_constellations",
		Columns: []string{"constellation_id", "constellation_name", "region_id"},
	}
	solarSystemTable = schema.TableSpec{
		Table: "eve_solar_systems",
		Columns: []string{
			"system_id", "system_name",
			"constellation_id", "constellation_name",
			"region_id", "region_name",
			"security_status", "security_class",
		},
	}
)

// runUniverse traverses the universe tree and writes regions,
// constellations and solar systems. Solar systems go into one file per
// region so a single enormous script never has to be replayed whole; the
// table itself is still cleared exactly once, by the first file.
func (r *Runner) runUniverse(ctx context.Context) error {
	u, err := r.walker.WalkUniverse(ctx)
	if err != nil {
		return err
	}
	if len(u.Regions) == 0 {
		r.logger.Info("no universe data, skipping kind")
		return nil
	}

	r.collector.RecordRows("regions", len(u.Regions))
	r.collector.RecordRows("constellations", len(u.Constellations))
	r.collector.RecordRows("solarSystems", len(u.Systems))
	r.logger.Info("universe traversed",
		zap.Int("regions", len(u.Regions)),
		zap.Int("constellations", len(u.Constellations)),
		zap.Int("systems", len(u.Systems)))

	dir := filepath.Join(r.cfg.OutputDir, universeDir)

	regions := make([]sqlgen.Row, 0, len(u.Regions))
	for _, region := range u.Regions {
		regions = append(regions, sqlgen.Row{region.ID, region.Name})
	}
	path := filepath.Join(dir, regionTable.Table+".sql")
	if err := r.writer.Write(path, regionTable, regions, sqlgen.WriteOptions{Replace: true}); err != nil {
		return err
	}

	constellations := make([]sqlgen.Row, 0, len(u.Constellations))
	for _, c := range u.Constellations {
		constellations = append(constellations, sqlgen.Row{c.ID, c.Name, c.RegionID})
	}
	path = filepath.Join(dir, constellationTable.Table+".sql")
	if err := r.writer.Write(path, constellationTable, constellations, sqlgen.WriteOptions{Replace: true}); err != nil {
		return err
	}

	return r.writeSolarSystems(dir, u)
}

// writeSolarSystems groups systems by region id, preserving traversal
// order, and writes one file per region. Only the first file carries the
// DELETE. Files are labeled by region name; when two regions share a name
// the later file keeps the region id as a suffix so neither overwrites
// the other.
func (r *Runner) writeSolarSystems(dir string, u sde.Universe) error {
	type regionGroup struct {
		name string
		rows []sqlgen.Row
	}
	grouped := make(map[interface{}]*regionGroup)
	var order []interface{}

	for _, s := range u.Systems {
		row := sqlgen.Row{
			s.ID, s.Name,
			s.ConstellationID, s.ConstellationName,
			s.RegionID, s.RegionName,
			s.Security, s.SecurityClass,
		}
		group, seen := grouped[s.RegionID]
		if !seen {
			group = &regionGroup{name: s.RegionName}
			grouped[s.RegionID] = group
			order = append(order, s.RegionID)
		}
		group.rows = append(group.rows, row)
	}

	used := make(map[string]bool, len(order))
	for i, regionID := range order {
		group := grouped[regionID]
		label := safeName(group.name)
		if used[label] {
			label = stringpool.Sprintf("%s_%v", label, regionID)
		}
		used[label] = true

		name := stringpool.Sprintf("%s_%s.sql", solarSystemTable.Table, label)
		path := filepath.Join(dir, name)
		opts := sqlgen.WriteOptions{Replace: i == 0}
		if err := r.writer.Write(path, solarSystemTable, group.rows, opts); err != nil {
			return err
		}
	}
	return nil
}

// safeName rewrites a region name into a filesystem-safe token, keeping
// only ASCII letters and digits.
func safeName(name string) string {
	b := stringpool.GetBuilder(stringpool.Small)
	defer stringpool.PutBuilder(b, stringpool.Small)

	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return stringpool.Clone(b.String())
}
