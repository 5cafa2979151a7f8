package extract

import (
	"testing"

	"github.com/zodgen/zodgen/openapi"
)

func petIDDoc() *openapi.Document {
	return &openapi.Document{
		OpenAPI: "3.0.3",
		Info:    openapi.Info{Title: "pets", Version: "1.0.0"},
		Paths: map[string]*openapi.PathItem{
			"/pets/{petId}": {
				Get: &openapi.Operation{
					Parameters: []*openapi.Parameter{
						{
							Name:     "petId",
							In:       "path",
							Required: true,
							Schema:   &openapi.SchemaNode{Type: "integer"},
						},
					},
					Responses: map[string]*openapi.Response{
						"200": {
							Content: map[string]*openapi.MediaType{
								"application/json": {Schema: &openapi.SchemaNode{Type: "object"}},
							},
						},
					},
				},
			},
		},
	}
}

func TestOperations_ScenarioPathParameter(t *testing.T) {
	ops, _ := Operations(petIDDoc())
	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}
	op := ops[0]

	if len(op.PathParams) != 1 {
		t.Fatalf("expected exactly one path parameter, got %d", len(op.PathParams))
	}
	p := op.PathParams[0]
	if p.Name != "petId" || !p.Required {
		t.Errorf("expected required petId, got %+v", p)
	}
	if p.Schema.Type != "integer" {
		t.Errorf("expected integer schema, got %q", p.Schema.Type)
	}
	if len(op.QueryParams) != 0 || len(op.HeaderParams) != 0 {
		t.Errorf("query and header groups must be empty, got %d/%d",
			len(op.QueryParams), len(op.HeaderParams))
	}
}

func TestOperations_SynthesizedID(t *testing.T) {
	ops, _ := Operations(petIDDoc())
	if ops[0].ID != "getPetsPetId" {
		t.Errorf("expected synthesized id getPetsPetId, got %q", ops[0].ID)
	}
	if ops[0].Method != "GET" {
		t.Errorf("expected GET, got %q", ops[0].Method)
	}
}

func TestSynthesizeID(t *testing.T) {
	tests := []struct {
		verb, path, want string
	}{
		{"get", "/pets", "getPets"},
		{"post", "/pets/{petId}/photos", "postPetsPetIdPhotos"},
		{"delete", "/v1/users", "deleteV1Users"},
		{"get", "/", "get"},
	}
	for _, tt := range tests {
		if got := SynthesizeID(tt.verb, tt.path); got != tt.want {
			t.Errorf("SynthesizeID(%q, %q) = %q, want %q", tt.verb, tt.path, got, tt.want)
		}
	}
}

func TestOperations_DeclaredIDWins(t *testing.T) {
	doc := petIDDoc()
	doc.Paths["/pets/{petId}"].Get.OperationID = "showPetById"
	ops, _ := Operations(doc)
	if ops[0].ID != "showPetById" {
		t.Errorf("declared operationId must win, got %q", ops[0].ID)
	}
}

func TestOperations_SkipsUnresolvableParameters(t *testing.T) {
	doc := petIDDoc()
	op := doc.Paths["/pets/{petId}"].Get
	op.Parameters = append(op.Parameters, &openapi.Parameter{
		Name: "broken",
		In:   "query",
		// No schema: the extractor skips it instead of failing.
	})

	ops, _ := Operations(doc)
	if len(ops[0].QueryParams) != 0 {
		t.Errorf("schemaless parameter must be skipped, got %+v", ops[0].QueryParams)
	}
}

func TestOperations_JSONBodyOnly(t *testing.T) {
	doc := petIDDoc()
	doc.Paths["/pets/{petId}"].Post = &openapi.Operation{
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"application/xml": {Schema: &openapi.SchemaNode{Type: "string"}},
			},
		},
	}

	ops, _ := Operations(doc)
	var post Operation
	for _, op := range ops {
		if op.Method == "POST" {
			post = op
		}
	}
	if post.HasBody {
		t.Error("non-JSON request bodies must be ignored")
	}

	doc.Paths["/pets/{petId}"].Post.RequestBody.Content["application/json"] =
		&openapi.MediaType{Schema: &openapi.SchemaNode{Type: "object"}}
	ops, _ = Operations(doc)
	for _, op := range ops {
		if op.Method == "POST" {
			post = op
		}
	}
	if !post.HasBody || !post.BodyRequired {
		t.Errorf("JSON body must be extracted with its required flag, got %+v", post)
	}
}

func TestOperations_DefaultResponse(t *testing.T) {
	doc := petIDDoc()
	get := doc.Paths["/pets/{petId}"].Get
	get.Responses["default"] = &openapi.Response{
		Content: map[string]*openapi.MediaType{
			"application/json": {Schema: &openapi.SchemaNode{Ref: "#/components/schemas/Error"}},
		},
	}
	get.Responses["204"] = &openapi.Response{Description: "no content"}

	ops, _ := Operations(doc)
	resp, ok := ops[0].Responses["default"]
	if !ok {
		t.Fatal("default response must be retained")
	}
	if resp.Void {
		t.Error("default response with a schema must not be void")
	}
	if resp.Fragment.Code != "ErrorSchema" {
		t.Errorf("got %s", resp.Fragment.Code)
	}

	noContent := ops[0].Responses["204"]
	if !noContent.Void {
		t.Error("schemaless response must be marked void")
	}

	statuses := ops[0].SortedStatuses()
	if statuses[len(statuses)-1] != "default" {
		t.Errorf("default must sort last, got %v", statuses)
	}
}

func TestOperations_PathLevelParameters(t *testing.T) {
	doc := petIDDoc()
	item := doc.Paths["/pets/{petId}"]
	item.Parameters = []*openapi.Parameter{
		{Name: "tenant", In: "header", Required: true, Schema: &openapi.SchemaNode{Type: "string"}},
	}

	ops, _ := Operations(doc)
	if len(ops[0].HeaderParams) != 1 || ops[0].HeaderParams[0].Name != "tenant" {
		t.Errorf("path-level parameters must apply to operations, got %+v", ops[0].HeaderParams)
	}
}

func TestOperations_Deterministic(t *testing.T) {
	doc := petIDDoc()
	doc.Paths["/a"] = &openapi.PathItem{Get: &openapi.Operation{}, Post: &openapi.Operation{}}

	ops, _ := Operations(doc)
	if len(ops) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(ops))
	}
	// Sorted path order, fixed verb order within a path.
	if ops[0].ID != "getA" || ops[1].ID != "postA" || ops[2].ID != "getPetsPetId" {
		t.Errorf("unexpected order: %s, %s, %s", ops[0].ID, ops[1].ID, ops[2].ID)
	}
}
