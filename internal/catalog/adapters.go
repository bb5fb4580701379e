package catalog

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Origin is the explicit discriminant between the two template record shapes.
// Conversion is selected by this field, never by probing for attributes.
type Origin string

const (
	OriginWorkflow Origin = "workflow"
	OriginCatalog  Origin = "catalog"
)

// GraphConfig describes the graph a template runs against
type GraphConfig struct {
	GraphName         string   `json:"graph_name"`
	GraphType         string   `json:"graph_type"`
	VertexCollections []string `json:"vertex_collections"`
	EdgeCollections   []string `json:"edge_collections"`
	VertexCount       int      `json:"vertex_count"`
	EdgeCount         int      `json:"edge_count"`
}

// WorkflowTemplate is the shape produced by the generation workflow. It has
// no identity or lineage yet.
type WorkflowTemplate struct {
	Origin            Origin                 `json:"origin"`
	Name              string                 `json:"name"`
	Algorithm         string                 `json:"algorithm"`
	Parameters        map[string]interface{} `json:"parameters,omitempty"`
	GraphName         string                 `json:"graph_name,omitempty"`
	VertexCollections []string               `json:"vertex_collections,omitempty"`
	EdgeCollections   []string               `json:"edge_collections,omitempty"`
	UseCaseID         string                 `json:"use_case_id,omitempty"`
}

// Template is the shape the catalog stores: identified, timestamped, and
// linked to its originating use case and requirements.
type Template struct {
	Origin         Origin                 `json:"origin"`
	TemplateID     string                 `json:"template_id"`
	UseCaseID      string                 `json:"use_case_id"`
	RequirementsID string                 `json:"requirements_id"`
	Timestamp      time.Time              `json:"timestamp"`
	Name           string                 `json:"name"`
	Algorithm      string                 `json:"algorithm"`
	Parameters     map[string]interface{} `json:"parameters,omitempty"`
	Graph          GraphConfig            `json:"graph_config"`
	Metadata       map[string]string      `json:"metadata,omitempty"`
}

// WorkflowUseCase is the shape produced by the generation workflow
type WorkflowUseCase struct {
	Origin              Origin   `json:"origin"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	GraphAlgorithms     []string `json:"graph_algorithms,omitempty"`
	ExpectedOutputs     []string `json:"expected_outputs,omitempty"`
	Priority            string   `json:"priority,omitempty"`
	RelatedRequirements []string `json:"related_requirements,omitempty"`
}

// UseCase is the catalog-stored use case record
type UseCase struct {
	Origin               Origin            `json:"origin"`
	UseCaseID            string            `json:"use_case_id"`
	RequirementsID       string            `json:"requirements_id"`
	Timestamp            time.Time         `json:"timestamp"`
	Title                string            `json:"title"`
	Description          string            `json:"description"`
	Algorithm            string            `json:"algorithm"`
	BusinessValue        string            `json:"business_value"`
	Priority             string            `json:"priority"`
	AddressesRequirement []string          `json:"addresses_requirements,omitempty"`
	Metadata             map[string]string `json:"metadata,omitempty"`
}

// AdaptTemplate converts a workflow template into its catalog shape. The
// input's Origin must be OriginWorkflow; an already-cataloged record is the
// caller's bug, not something to silently pass through.
func AdaptTemplate(t WorkflowTemplate, useCaseID, requirementsID string) (Template, error) {
	if t.Origin != OriginWorkflow {
		return Template{}, fmt.Errorf("adapt template: expected origin %q, got %q", OriginWorkflow, t.Origin)
	}

	name := t.Name
	if name == "" {
		name = "unknown"
	}
	algorithm := t.Algorithm
	if algorithm == "" {
		algorithm = "unknown"
	}
	graphName := t.GraphName
	if graphName == "" {
		graphName = "unknown"
	}

	if useCaseID == "" {
		useCaseID = t.UseCaseID
	}

	return Template{
		Origin:         OriginCatalog,
		TemplateID:     newID("tpl"),
		UseCaseID:      useCaseID,
		RequirementsID: requirementsID,
		Timestamp:      time.Now().UTC(),
		Name:           name,
		Algorithm:      algorithm,
		Parameters:     t.Parameters,
		Graph: GraphConfig{
			GraphName:         graphName,
			GraphType:         "named_graph",
			VertexCollections: emptyIfNil(t.VertexCollections),
			EdgeCollections:   emptyIfNil(t.EdgeCollections),
		},
		Metadata: map[string]string{},
	}, nil
}

// AdaptUseCase converts a workflow use case into its catalog shape. The
// algorithm is the first of the workflow's graph algorithms; the business
// value is the first expected output.
func AdaptUseCase(uc WorkflowUseCase, requirementsID string) (UseCase, error) {
	if uc.Origin != OriginWorkflow {
		return UseCase{}, fmt.Errorf("adapt use case: expected origin %q, got %q", OriginWorkflow, uc.Origin)
	}

	algorithm := "unknown"
	if len(uc.GraphAlgorithms) > 0 {
		algorithm = uc.GraphAlgorithms[0]
	}

	businessValue := ""
	if len(uc.ExpectedOutputs) > 0 {
		businessValue = uc.ExpectedOutputs[0]
	}

	priority := uc.Priority
	if priority == "" {
		priority = "medium"
	}

	return UseCase{
		Origin:               OriginCatalog,
		UseCaseID:            newID("uc"),
		RequirementsID:       requirementsID,
		Timestamp:            time.Now().UTC(),
		Title:                uc.Title,
		Description:          uc.Description,
		Algorithm:            algorithm,
		BusinessValue:        businessValue,
		Priority:             priority,
		AddressesRequirement: emptyIfNil(uc.RelatedRequirements),
		Metadata:             map[string]string{},
	}, nil
}

func newID(prefix string) string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// Fall back to a time-derived id; collisions are acceptable here
		return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
	}
	return prefix + "_" + hex.EncodeToString(b[:])
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
