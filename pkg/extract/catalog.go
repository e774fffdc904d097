package extract

import (
	"github.com/zenevan/sde2sql/pkg/schema"
)

// Catalog builds the registry of every supported entity kind. The lang
// parameter selects the localized-text translation the rules read.
func Catalog(lang string) (*Registry, error) {
	r := NewRegistry()

	specs := make([]Spec, 0, 32)
	specs = append(specs, fsdSpecs(lang)...)
	specs = append(specs, bsdSpecs(lang)...)

	for _, spec := range specs {
		if err := r.Register(spec); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// fsdSpecs declares the keyed entity kinds under the fsd directory.
func fsdSpecs(lang string) []Spec {
	return []Spec{
		{
			Kind:   "agents",
			Family: FamilyFSD,
			File:   "agents.yaml",
			Table: schema.TableSpec{
				Table:   "eve_agents",
				Columns: []string{"agent_id", "corporation_id", "division_id", "level", "location_id", "agent_type_id", "is_locator"},
			},
			Extract: Keyed(lang, RuleSet{
				"corporation_id": Field("corporationID"),
				"division_id":    Field("divisionID"),
				"location_id":    Field("locationID"),
				"agent_type_id":  Field("agentTypeID"),
				"is_locator":     Flag("isLocator"),
			}),
		},
		{
			Kind:   "npcCorporations",
			Family: FamilyFSD,
			File:   "npcCorporations.yaml",
			Table: schema.TableSpec{
				Table:   "eve_corporations",
				Columns: []string{"corporation_id", "corporation_name", "ticker", "ceo_character_id", "tax_rate", "member_count", "alliance_id", "faction_id", "description"},
			},
			Extract: Keyed(lang, RuleSet{
				"corporation_name": Localized("nameID", lang, "Unknown"),
				"ticker":           Or("tickerName", ""),
				"ceo_character_id": Field("ceoID"),
				"tax_rate":         Or("taxRate", 0.0),
				// memberLimit is the closest SDE field to a member count
				"member_count": Or("memberLimit", 0),
				// alliance membership is not part of the static export
				"alliance_id": Const(nil),
				"faction_id":  Field("factionID"),
				"description": Localized("descriptionID", lang, ""),
			}),
		},
		{
			Kind:   "npcCorporationDivisions",
			Family: FamilyFSD,
			File:   "npcCorporationDivisions.yaml",
			Table: schema.TableSpec{
				Table:   "eve_corporation_divisions",
				Columns: []string{"division_id", "division_name", "description", "leader_type_name"},
			},
			Extract: Keyed(lang, RuleSet{
				"division_name":    Localized("nameID", lang, "Unknown"),
				"description":      Or("description", ""),
				"leader_type_name": Localized("leaderTypeNameID", lang, ""),
			}),
		},
		{
			Kind:   "races",
			Family: FamilyFSD,
			File:   "races.yaml",
			Table: schema.TableSpec{
				Table:   "eve_races",
				Columns: []string{"race_id", "race_name", "description", "icon_id", "ship_type_id"},
			},
			Extract: Keyed(lang, RuleSet{
				"race_name":    Localized("nameID", lang, "Unknown"),
				"description":  Localized("descriptionID", lang, ""),
				"icon_id":      Field("iconID"),
				"ship_type_id": Field("shipTypeID"),
			}),
		},
		{
			Kind:   "bloodlines",
			Family: FamilyFSD,
			File:   "bloodlines.yaml",
			Table: schema.TableSpec{
				Table:   "eve_bloodlines",
				Columns: []string{"bloodline_id", "bloodline_name", "race_id", "description", "corporation_id", "charisma", "intelligence", "memory", "perception", "willpower"},
			},
			Extract: Keyed(lang, RuleSet{
				"bloodline_name": Localized("nameID", lang, "Unknown"),
				"race_id":        Field("raceID"),
				"description":    Localized("descriptionID", lang, ""),
				"corporation_id": Field("corporationID"),
			}),
		},
		{
			Kind:   "ancestries",
			Family: FamilyFSD,
			File:   "ancestries.yaml",
			Table: schema.TableSpec{
				Table:   "eve_ancestries",
				Columns: []string{"ancestry_id", "ancestry_name", "bloodline_id", "description", "short_description", "icon_id"},
			},
			Extract: Keyed(lang, RuleSet{
				"ancestry_name":     Localized("nameID", lang, "Unknown"),
				"bloodline_id":      Field("bloodlineID"),
				"description":       Localized("descriptionID", lang, ""),
				"short_description": Or("shortDescription", ""),
				"icon_id":           Field("iconID"),
			}),
		},
		{
			Kind:   "categories",
			Family: FamilyFSD,
			File:   "categories.yaml",
			Table: schema.TableSpec{
				Table:   "eve_categories",
				Columns: []string{"category_id", "category_name", "published"},
			},
			Extract: Keyed(lang, RuleSet{
				"category_name": Localized("name", lang, "Unknown"),
				"published":     Flag("published"),
			}),
		},
		{
			Kind:   "groups",
			Family: FamilyFSD,
			File:   "groups.yaml",
			Table: schema.TableSpec{
				Table:   "eve_groups",
				Columns: []string{"group_id", "group_name", "category_id", "published", "anchorable", "anchored", "fittable_non_singleton"},
			},
			Extract: Keyed(lang, RuleSet{
				"group_name":             Localized("name", lang, "Unknown"),
				"category_id":            Field("categoryID"),
				"published":              Flag("published"),
				"anchorable":             Flag("anchorable"),
				"anchored":               Flag("anchored"),
				"fittable_non_singleton": Flag("fittableNonSingleton"),
			}),
		},
		{
			Kind:   "types",
			Family: FamilyFSD,
			File:   "types.yaml",
			Table: schema.TableSpec{
				Table:   "eve_item_types",
				Columns: []string{"type_id", "type_name", "group_id", "published", "mass", "portion_size", "volume", "capacity"},
			},
			Extract: Keyed(lang, RuleSet{
				"type_name":    Localized("name", lang, "Unknown"),
				"group_id":     Field("groupID"),
				"published":    Flag("published"),
				"portion_size": Field("portionSize"),
			}),
		},
		{
			Kind:   "metaGroups",
			Family: FamilyFSD,
			File:   "metaGroups.yaml",
			Table: schema.TableSpec{
				Table:   "eve_meta_groups",
				Columns: []string{"meta_group_id", "meta_group_name", "icon_id"},
			},
			Extract: Keyed(lang, RuleSet{
				"meta_group_name": Localized("nameID", lang, "Unknown"),
				"icon_id":         Field("iconID"),
			}),
		},
		{
			Kind:   "marketGroups",
			Family: FamilyFSD,
			File:   "marketGroups.yaml",
			Table: schema.TableSpec{
				Table:   "eve_market_groups",
				Columns: []string{"market_group_id", "market_group_name", "description", "icon_id", "has_types"},
			},
			Extract: Keyed(lang, RuleSet{
				"market_group_name": Localized("nameID", lang, "Unknown"),
				"description":       Localized("descriptionID", lang, ""),
				"icon_id":           Field("iconID"),
				"has_types":         Flag("hasTypes"),
			}),
		},
		{
			Kind:   "factions",
			Family: FamilyFSD,
			File:   "factions.yaml",
			Table: schema.TableSpec{
				Table:   "eve_factions",
				Columns: []string{"faction_id", "faction_name", "description", "corporation_id", "militia_corporation_id", "size_factor", "station_count", "station_system_count", "is_unique"},
			},
			Extract: Keyed(lang, RuleSet{
				"faction_name":           Localized("nameID", lang, "Unknown"),
				"description":            Localized("descriptionID", lang, ""),
				"corporation_id":         Field("corporationID"),
				"militia_corporation_id": Field("militiaCorporationID"),
				"size_factor":            Field("sizeFactor"),
				// station rollups are not derivable from the static export
				"station_count":        Const(0),
				"station_system_count": Const(0),
				"is_unique":            Flag("uniqueName"),
			}),
		},
		{
			Kind:   "blueprints",
			Family: FamilyFSD,
			File:   "blueprints.yaml",
			Table: schema.TableSpec{
				Table:   "eve_blueprints",
				Columns: []string{"blueprint_type_id", "max_production_limit", "copying_time", "manufacturing_time", "research_material_time", "research_time_time"},
			},
			Extract: Keyed(lang, RuleSet{
				"max_production_limit":   Field("maxProductionLimit"),
				"copying_time":           Nested("activities", "copying", "time"),
				"manufacturing_time":     Nested("activities", "manufacturing", "time"),
				"research_material_time": Nested("activities", "research_material", "time"),
				"research_time_time":     Nested("activities", "research_time", "time"),
			}),
		},
		{
			Kind:   "blueprintMaterials",
			Family: FamilyFSD,
			File:   "blueprints.yaml",
			Table: schema.TableSpec{
				Table:   "eve_blueprint_materials",
				Columns: []string{"blueprint_type_id", "material_type_id", "quantity"},
			},
			Extract: Children(lang, RuleSet{
				"material_type_id": Field("typeID"),
			}, "activities", "manufacturing", "materials"),
		},
		{
			Kind:   "blueprintProducts",
			Family: FamilyFSD,
			File:   "blueprints.yaml",
			Table: schema.TableSpec{
				Table:   "eve_blueprint_products",
				Columns: []string{"blueprint_type_id", "product_type_id", "quantity"},
			},
			Extract: Children(lang, RuleSet{
				"product_type_id": Field("typeID"),
			}, "activities", "manufacturing", "products"),
		},
		{
			Kind:   "typeMaterials",
			Family: FamilyFSD,
			File:   "typeMaterials.yaml",
			Table: schema.TableSpec{
				Table:   "eve_type_materials",
				Columns: []string{"type_id", "material_type_id", "quantity"},
			},
			Extract: Children(lang, RuleSet{
				"material_type_id": Field("materialTypeID"),
			}, "materials"),
		},
		{
			Kind:   "dogmaAttributes",
			Family: FamilyFSD,
			File:   "dogmaAttributes.yaml",
			Table: schema.TableSpec{
				Table:   "eve_dogma_attributes",
				Columns: []string{"attribute_id", "attribute_name", "category_id", "data_type", "default_value", "description", "icon_id", "unit_id", "published", "display_name", "stackable", "high_is_good"},
			},
			Extract: Keyed(lang, RuleSet{
				"attribute_name": Or("name", ""),
				"category_id":    Field("categoryID"),
				"data_type":      Field("dataType"),
				"default_value":  Field("defaultValue"),
				"description":    Or("description", ""),
				"icon_id":        Field("iconID"),
				"unit_id":        Field("unitID"),
				"published":      Flag("published"),
				"display_name":   Localized("displayNameID", lang, ""),
				"stackable":      Flag("stackable"),
				"high_is_good":   Flag("highIsGood"),
			}),
		},
		{
			Kind:   "dogmaEffects",
			Family: FamilyFSD,
			File:   "dogmaEffects.yaml",
			Table: schema.TableSpec{
				Table:   "eve_dogma_effects",
				Columns: []string{"effect_id", "effect_name", "effect_category", "is_offensive", "is_assistance", "duration_attribute_id", "discharge_attribute_id", "range_attribute_id", "falloff_attribute_id", "tracking_speed_attribute_id", "fitting_usage_chance_attribute_id", "resist_attribute_id", "electronic_chance", "propulsion_chance", "published"},
			},
			Extract: Keyed(lang, RuleSet{
				"effect_name":                       Or("effectName", ""),
				"effect_category":                   Field("effectCategory"),
				"is_offensive":                      Flag("isOffensive"),
				"is_assistance":                     Flag("isAssistance"),
				"duration_attribute_id":             Field("durationAttributeID"),
				"discharge_attribute_id":            Field("dischargeAttributeID"),
				"range_attribute_id":                Field("rangeAttributeID"),
				"falloff_attribute_id":              Field("falloffAttributeID"),
				"tracking_speed_attribute_id":       Field("trackingSpeedAttributeID"),
				"fitting_usage_chance_attribute_id": Field("fittingUsageChanceAttributeID"),
				"resist_attribute_id":               Field("resistanceAttributeID"),
				"electronic_chance":                 Flag("electronicChance"),
				"propulsion_chance":                 Flag("propulsionChance"),
				"published":                         Flag("published"),
			}),
		},
		{
			Kind:   "typeDogma",
			Family: FamilyFSD,
			File:   "typeDogma.yaml",
			Table: schema.TableSpec{
				Table:   "eve_type_dogma",
				Columns: []string{"type_id", "attribute_id", "value"},
			},
			Extract: Children(lang, RuleSet{
				"attribute_id": Field("attributeID"),
			}, "dogmaAttributes"),
		},
	}
}

// bsdSpecs declares the record-list entity kinds under the bsd directory.
// Columns resolve by exact field name first, then by the lower-camel
// translation of the column name; only renames that break that convention
// need explicit rules.
func bsdSpecs(lang string) []Spec {
	return []Spec{
		{
			Kind:   "invNames",
			Family: FamilyBSD,
			File:   "invNames.yaml",
			Table: schema.TableSpec{
				Table:   "eve_inv_names",
				Columns: []string{"item_id", "item_name"},
			},
			Extract: Listed(lang, nil),
		},
		{
			Kind:   "staStations",
			Family: FamilyBSD,
			File:   "staStations.yaml",
			Table: schema.TableSpec{
				Table:   "eve_stations",
				Columns: []string{"station_id", "station_name", "corporation_id", "system_id", "constellation_id", "region_id", "station_type_id", "x", "y", "z", "security", "docking_cost_per_volume", "max_ship_volume_dockable", "office_rental_cost"},
			},
			Extract: Listed(lang, RuleSet{
				"system_id": Field("solarSystemID"),
			}),
		},
		{
			Kind:   "invFlags",
			Family: FamilyBSD,
			File:   "invFlags.yaml",
			Table: schema.TableSpec{
				Table:   "eve_inv_flags",
				Columns: []string{"flag_id", "flag_name", "flag_text", "order_id"},
			},
			Extract: Listed(lang, nil),
		},
		{
			Kind:   "invItems",
			Family: FamilyBSD,
			File:   "invItems.yaml",
			Table: schema.TableSpec{
				Table:   "eve_inv_items",
				Columns: []string{"item_id", "type_id", "owner_id", "location_id", "flag_id", "quantity"},
			},
			Extract: Listed(lang, nil),
		},
		{
			Kind:   "invPositions",
			Family: FamilyBSD,
			File:   "invPositions.yaml",
			Table: schema.TableSpec{
				Table:   "eve_inv_positions",
				Columns: []string{"item_id", "x", "y", "z", "yaw", "pitch", "roll"},
			},
			Extract: Listed(lang, nil),
		},
		{
			Kind:   "invUniqueNames",
			Family: FamilyBSD,
			File:   "invUniqueNames.yaml",
			Table: schema.TableSpec{
				Table:   "eve_inv_unique_names",
				Columns: []string{"item_id", "item_name", "group_id"},
			},
			Extract: Listed(lang, nil),
		},
	}
}

// Landmarks returns the spec for the universe landmarks document, which
// lives outside the fsd/bsd directories and is loaded by a dedicated
// walker operation.
func Landmarks(lang string) Spec {
	return Spec{
		Kind:   "landmarks",
		Family: FamilyUniverse,
		File:   "landmarks.yaml",
		Table: schema.TableSpec{
			Table:   "eve_landmarks",
			Columns: []string{"landmark_id", "name", "description", "location_id", "x", "y", "z"},
		},
		Extract: Keyed(lang, RuleSet{
			"name":        Localized("name", lang, ""),
			"description": Localized("description", lang, ""),
			"location_id": Field("locationID"),
		}),
	}
}
