package catalog

import (
	"strings"
	"testing"
)

func TestAdaptTemplate(t *testing.T) {
	wf := WorkflowTemplate{
		Origin:            OriginWorkflow,
		Name:              "pagerank_influence",
		Algorithm:         "pagerank",
		Parameters:        map[string]interface{}{"damping": 0.85},
		GraphName:         "identity_graph",
		VertexCollections: []string{"devices", "ips"},
		EdgeCollections:   []string{"connections"},
	}

	tpl, err := AdaptTemplate(wf, "uc_1", "req_1")
	if err != nil {
		t.Fatalf("AdaptTemplate failed: %v", err)
	}

	if tpl.Origin != OriginCatalog {
		t.Errorf("expected catalog origin, got %q", tpl.Origin)
	}
	if !strings.HasPrefix(tpl.TemplateID, "tpl_") {
		t.Errorf("expected tpl_ id prefix, got %q", tpl.TemplateID)
	}
	if tpl.UseCaseID != "uc_1" || tpl.RequirementsID != "req_1" {
		t.Errorf("unexpected lineage: %q / %q", tpl.UseCaseID, tpl.RequirementsID)
	}
	if tpl.Name != "pagerank_influence" || tpl.Algorithm != "pagerank" {
		t.Errorf("unexpected name/algorithm: %q / %q", tpl.Name, tpl.Algorithm)
	}
	if tpl.Graph.GraphName != "identity_graph" {
		t.Errorf("unexpected graph name: %q", tpl.Graph.GraphName)
	}
	if tpl.Graph.GraphType != "named_graph" {
		t.Errorf("unexpected graph type: %q", tpl.Graph.GraphType)
	}
	if tpl.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestAdaptTemplate_Defaults(t *testing.T) {
	wf := WorkflowTemplate{Origin: OriginWorkflow, UseCaseID: "uc_from_wf"}

	tpl, err := AdaptTemplate(wf, "", "")
	if err != nil {
		t.Fatalf("AdaptTemplate failed: %v", err)
	}

	if tpl.Name != "unknown" || tpl.Algorithm != "unknown" {
		t.Errorf("expected unknown defaults, got %q / %q", tpl.Name, tpl.Algorithm)
	}
	if tpl.Graph.GraphName != "unknown" {
		t.Errorf("expected unknown graph name, got %q", tpl.Graph.GraphName)
	}
	// Use case id falls back to the workflow record's own link
	if tpl.UseCaseID != "uc_from_wf" {
		t.Errorf("expected use case id from workflow record, got %q", tpl.UseCaseID)
	}
	if tpl.Graph.VertexCollections == nil || tpl.Graph.EdgeCollections == nil {
		t.Error("expected empty slices, not nil")
	}
}

func TestAdaptTemplate_WrongOrigin(t *testing.T) {
	_, err := AdaptTemplate(WorkflowTemplate{Origin: OriginCatalog}, "", "")
	if err == nil {
		t.Fatal("expected error for wrong origin")
	}

	_, err = AdaptTemplate(WorkflowTemplate{}, "", "")
	if err == nil {
		t.Fatal("expected error for missing origin")
	}
}

func TestAdaptUseCase(t *testing.T) {
	wf := WorkflowUseCase{
		Origin:              OriginWorkflow,
		Title:               "Detect botnet device pools",
		Description:         "Find components with abnormal device-to-IP ratios.",
		GraphAlgorithms:     []string{"wcc", "pagerank"},
		ExpectedOutputs:     []string{"Fraud component list", "Device counts"},
		Priority:            "high",
		RelatedRequirements: []string{"req_3"},
	}

	uc, err := AdaptUseCase(wf, "req_1")
	if err != nil {
		t.Fatalf("AdaptUseCase failed: %v", err)
	}

	if uc.Origin != OriginCatalog {
		t.Errorf("expected catalog origin, got %q", uc.Origin)
	}
	if !strings.HasPrefix(uc.UseCaseID, "uc_") {
		t.Errorf("expected uc_ id prefix, got %q", uc.UseCaseID)
	}
	// First algorithm wins
	if uc.Algorithm != "wcc" {
		t.Errorf("expected first algorithm, got %q", uc.Algorithm)
	}
	// First expected output becomes the business value
	if uc.BusinessValue != "Fraud component list" {
		t.Errorf("unexpected business value: %q", uc.BusinessValue)
	}
	if uc.Priority != "high" {
		t.Errorf("unexpected priority: %q", uc.Priority)
	}
}

func TestAdaptUseCase_Defaults(t *testing.T) {
	uc, err := AdaptUseCase(WorkflowUseCase{Origin: OriginWorkflow}, "")
	if err != nil {
		t.Fatalf("AdaptUseCase failed: %v", err)
	}

	if uc.Algorithm != "unknown" {
		t.Errorf("expected unknown algorithm, got %q", uc.Algorithm)
	}
	if uc.Priority != "medium" {
		t.Errorf("expected medium priority default, got %q", uc.Priority)
	}
	if uc.AddressesRequirement == nil {
		t.Error("expected empty slice, not nil")
	}
}

func TestAdaptUseCase_WrongOrigin(t *testing.T) {
	if _, err := AdaptUseCase(WorkflowUseCase{Origin: OriginCatalog}, ""); err == nil {
		t.Fatal("expected error for wrong origin")
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newID("tpl")
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
