package sde

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/zenevan/sde2sql/pkg/errors"
)

// Region is one universe region with its space type.
type Region struct {
	ID        interface{}
	Name      string
	SpaceType string
}

// Constellation carries its enclosing region context explicitly.
type Constellation struct {
	ID         interface{}
	Name       string
	RegionID   interface{}
	RegionName string
	SpaceType  string
}

// SolarSystem carries both enclosing levels of context explicitly.
type SolarSystem struct {
	ID                interface{}
	Name              string
	ConstellationID   interface{}
	ConstellationName string
	RegionID          interface{}
	RegionName        string
	Security          float64
	SecurityClass     string
	SpaceType         string
}

// Universe is the full result of one universe traversal.
type Universe struct {
	Regions        []Region
	Constellations []Constellation
	Systems        []SolarSystem
}

// WalkUniverse traverses <root>/universe/<space>/<region>/<constellation>/
// <system>, reading region.yaml, constellation.yaml and solarsystem.yaml at
// their respective levels. Parent identifiers flow down through explicit
// context values; a level whose descriptor file is missing is skipped with
// a diagnostic, along with its subtree.
func (w *FSWalker) WalkUniverse(ctx context.Context) (Universe, error) {
	universeDir := filepath.Join(w.root, "universe")
	if _, err := os.Stat(universeDir); err != nil {
		if os.IsNotExist(err) {
			w.logger.Warn("universe directory not found, skipping", zap.String("path", universeDir))
			w.recordSkip()
			return Universe{}, nil
		}
		return Universe{}, errors.Wrap(err, errors.ErrorTypeFile, "failed to stat universe directory")
	}

	var u Universe
	for _, space := range w.spaceTypes {
		spaceDir := filepath.Join(universeDir, space)
		if _, err := os.Stat(spaceDir); err != nil {
			continue
		}
		if err := w.walkSpace(ctx, space, spaceDir, &u); err != nil {
			return Universe{}, err
		}
	}
	return u, nil
}

func (w *FSWalker) walkSpace(ctx context.Context, space, spaceDir string, u *Universe) error {
	dirs, err := os.ReadDir(spaceDir)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to list space directory").
			WithDetail("path", spaceDir)
	}

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}

		regionDir := filepath.Join(spaceDir, dir.Name())
		fields, ok, err := w.loadDescriptor(filepath.Join(regionDir, "region.yaml"))
		if err != nil {
			return err
		}
		if !ok {
			w.logger.Warn("region descriptor missing, skipping subtree",
				zap.String("region", dir.Name()), zap.String("space_type", space))
			continue
		}

		region := Region{
			ID:        fields.Value("regionID"),
			Name:      fields.Text("name", w.lang, dir.Name()),
			SpaceType: space,
		}
		u.Regions = append(u.Regions, region)

		if err := w.walkRegion(ctx, region, regionDir, u); err != nil {
			return err
		}
	}
	return nil
}

func (w *FSWalker) walkRegion(ctx context.Context, region Region, regionDir string, u *Universe) error {
	dirs, err := os.ReadDir(regionDir)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to list region directory").
			WithDetail("path", regionDir)
	}

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}

		constellationDir := filepath.Join(regionDir, dir.Name())
		fields, ok, err := w.loadDescriptor(filepath.Join(constellationDir, "constellation.yaml"))
		if err != nil {
			return err
		}
		if !ok {
			w.logger.Warn("constellation descriptor missing, skipping subtree",
				zap.String("constellation", dir.Name()), zap.String("region", region.Name))
			continue
		}

		constellation := Constellation{
			ID:         fields.Value("constellationID"),
			Name:       fields.Text("name", w.lang, dir.Name()),
			RegionID:   region.ID,
			RegionName: region.Name,
			SpaceType:  region.SpaceType,
		}
		u.Constellations = append(u.Constellations, constellation)

		if err := w.walkConstellation(ctx, constellation, constellationDir, u); err != nil {
			return err
		}
	}
	return nil
}

func (w *FSWalker) walkConstellation(ctx context.Context, constellation Constellation, constellationDir string, u *Universe) error {
	dirs, err := os.ReadDir(constellationDir)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to list constellation directory").
			WithDetail("path", constellationDir)
	}

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}

		fields, ok, err := w.loadDescriptor(filepath.Join(constellationDir, dir.Name(), "solarsystem.yaml"))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		u.Systems = append(u.Systems, SolarSystem{
			ID:                fields.Value("solarSystemID"),
			Name:              fields.Text("name", w.lang, dir.Name()),
			ConstellationID:   constellation.ID,
			ConstellationName: constellation.Name,
			RegionID:          constellation.RegionID,
			RegionName:        constellation.RegionName,
			Security:          fields.Float("security", 0),
			SecurityClass:     fields.String("securityClass", ""),
			SpaceType:         constellation.SpaceType,
		})
	}
	return nil
}

// loadDescriptor parses one single-entity YAML descriptor file.
func (w *FSWalker) loadDescriptor(path string) (Fields, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: paths are derived from the validated SDE root
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, errors.ErrorTypeFile, "failed to read descriptor").
			WithDetail("path", path)
	}

	var fields Fields
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, false, errors.Wrap(err, errors.ErrorTypeParse, "failed to parse descriptor").
			WithDetail("path", path)
	}
	return fields, true, nil
}
