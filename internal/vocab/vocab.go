// Package vocab names the canonical labels that graph-building code uses
// directly, without an external source string to translate. Resolve them to
// identifiers with resolve.Resolver.Lookup.
package vocab

// Provenance types.
const (
	Assay                          = "assay"
	Organization                   = "organization"
	Person                         = "person"
	StatisticalHypothesisTest      = "statistical_hypothesis_test"
	MixedModel                     = "mixed_model"
	Project                        = "project"
	Study                          = "study"
	VariantClassificationGuideline = "variant_classification_guideline"
	AssertionProcess               = "assertion_process"
	Xref                           = "xref"
)

// Provenance object properties.
const (
	HasInformationProvenance = "has_information_provenance"
	HasParticipant           = "has_participant"
	HasAgent                 = "has_agent"
	CreatedByAgent           = "created_by_agent"
	IsExpressedIn            = "is_expressed_in"
	OutputOf                 = "output_of"
	SpecifiedBy              = "specified_by"
	CreatedAtLocation        = "created_at_location"
	CreatedWithResource      = "created_with_resource"
	Measures                 = "measures"
)

// Association relations.
const (
	PartOf        = "part_of"
	HasPart       = "has_part"
	HasPhenotype  = "has_phenotype"
	InteractsWith = "interacts_with"
	IsMarkerFor   = "is_marker_for"
)

// Zygosity.
const (
	Hemizygous           = "hemizygous"
	Heterozygous         = "heterozygous"
	SimpleHeterozygous   = "simple_heterozygous"
	CompoundHeterozygous = "compound_heterozygous"
	Homozygous           = "homozygous"
	Indeterminate        = "indeterminate"
)

// DefaultTaxa are the organisms loaded when no taxon filter is given.
var DefaultTaxa = []string{
	"Homo sapiens",
	"Mus musculus",
	"Danio rerio",
	"Drosophila melanogaster",
	"Caenorhabditis elegans",
}

// All returns every label constant in this package.
func All() []string {
	labels := []string{
		Assay, Organization, Person, StatisticalHypothesisTest, MixedModel,
		Project, Study, VariantClassificationGuideline, AssertionProcess, Xref,
		HasInformationProvenance, HasParticipant, HasAgent, CreatedByAgent,
		IsExpressedIn, OutputOf, SpecifiedBy, CreatedAtLocation,
		CreatedWithResource, Measures,
		PartOf, HasPart, HasPhenotype, InteractsWith, IsMarkerFor,
		Hemizygous, Heterozygous, SimpleHeterozygous, CompoundHeterozygous,
		Homozygous, Indeterminate,
	}
	return append(labels, DefaultTaxa...)
}
