package registry

import (
	"testing"

	"github.com/vovakirdan/tui-puzzler/internal/core"
)

type testGame struct{ id string }

func (g testGame) ID() string                          { return g.id }
func (g testGame) Title() string                       { return "Test " + g.id }
func (g testGame) Reset(core.RuntimeConfig)            {}
func (g testGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g testGame) Render(*core.Screen)                 {}
func (g testGame) State() core.GameState               { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_test_b", func() Game { return testGame{id: "zz_test_b"} })
	Register("zz_test_a", func() Game { return testGame{id: "zz_test_a"} })

	if !Exists("zz_test_a") {
		t.Fatal("registered game should exist")
	}
	if Exists("zz_missing") {
		t.Error("unregistered game should not exist")
	}

	g, err := Create("zz_test_b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz_test_b" {
		t.Errorf("created %q", g.ID())
	}
	if _, err := Create("zz_missing"); err == nil {
		t.Error("expected an error for an unknown game")
	}

	list := List()
	ia, ib := -1, -1
	for i, info := range list {
		switch info.ID {
		case "zz_test_a":
			ia = i
			if info.Title != "Test zz_test_a" {
				t.Errorf("title %q", info.Title)
			}
		case "zz_test_b":
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("list not sorted by ID: %v", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_test_dup", func() Game { return testGame{id: "zz_test_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("expected a panic on duplicate registration")
		}
	}()
	Register("zz_test_dup", func() Game { return testGame{id: "zz_test_dup"} })
}
