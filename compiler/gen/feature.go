package gen

import "github.com/syssam/tablegen/schema"

var (
	// FeatureInsert controls the insert statement.
	FeatureInsert = Feature{
		Name:        "insert",
		Description: "Inserts one record",
		enabled:     func(f schema.Features) bool { return f.Insert },
	}

	// FeatureSelectByKey controls selecting one record by its primary key.
	FeatureSelectByKey = Feature{
		Name:        "select_by_key",
		Description: "Selects one record by its primary key",
		enabled:     func(f schema.Features) bool { return f.SelectByKey },
	}

	// FeatureSelectByExample controls selecting records matching an example.
	FeatureSelectByExample = Feature{
		Name:        "select_by_example",
		Description: "Selects the records matching an example record",
		enabled:     func(f schema.Features) bool { return f.SelectByExample },
	}

	// FeatureUpdateByKey controls updating one record by its primary key.
	FeatureUpdateByKey = Feature{
		Name:        "update_by_key",
		Description: "Updates one record by its primary key",
		enabled:     func(f schema.Features) bool { return f.UpdateByKey },
	}

	// FeatureUpdateByExample controls updating records matching an example.
	FeatureUpdateByExample = Feature{
		Name:        "update_by_example",
		Description: "Updates the records matching an example record",
		enabled:     func(f schema.Features) bool { return f.UpdateByExample },
	}

	// FeatureDeleteByKey controls deleting one record by its primary key.
	FeatureDeleteByKey = Feature{
		Name:        "delete_by_key",
		Description: "Deletes one record by its primary key",
		enabled:     func(f schema.Features) bool { return f.DeleteByKey },
	}

	// FeatureDeleteByExample controls deleting records matching an example.
	FeatureDeleteByExample = Feature{
		Name:        "delete_by_example",
		Description: "Deletes the records matching an example record",
		enabled:     func(f schema.Features) bool { return f.DeleteByExample },
	}

	// FeatureCountByExample controls counting records matching an example.
	FeatureCountByExample = Feature{
		Name:        "count_by_example",
		Description: "Counts the records matching an example record",
		enabled:     func(f schema.Features) bool { return f.CountByExample },
	}

	// AllFeatures holds a list of all statement features, in the order
	// emitters see them.
	AllFeatures = []Feature{
		FeatureInsert,
		FeatureSelectByKey,
		FeatureSelectByExample,
		FeatureUpdateByKey,
		FeatureUpdateByExample,
		FeatureDeleteByKey,
		FeatureDeleteByExample,
		FeatureCountByExample,
	}
)

// A Feature of a generated table, backed by one of the TablePattern flags.
type Feature struct {
	// Name of the feature.
	Name string

	// Description of the feature.
	Description string

	enabled func(schema.Features) bool
}

// Enabled reports whether the feature is enabled for the table entry.
func (f Feature) Enabled(p *schema.TablePattern) bool {
	return p != nil && f.enabled(p.Features)
}

// FeatureByName returns the registered feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}
