package conftree

import "testing"

func TestBuilder_SimpleTree(t *testing.T) {
	b := New("facility")
	b.Attr("isWeb", "false")

	b.Child("factory").
		Attr("id", "crm").
		Attr("driver", "sqlite3")

	billing := b.Child("factory").
		Attr("id", "billing").
		Attr("alias", "billing")
	billing.Child("mapping").
		Attr("file", "queries/billing.yaml")

	node := b.Node()

	if got := node.AttrDefault("isWeb", ""); got != "false" {
		t.Errorf("expected isWeb 'false', got %q", got)
	}

	factories := node.ChildrenNamed("factory")
	if len(factories) != 2 {
		t.Fatalf("expected 2 factory children, got %d", len(factories))
	}
	if factories[0].AttrDefault("id", "") != "crm" {
		t.Errorf("expected first factory 'crm', got %q", factories[0].AttrDefault("id", ""))
	}

	mapping := factories[1].FirstChild("mapping")
	if mapping == nil {
		t.Fatal("expected a mapping child on the billing factory")
	}
	if got := mapping.AttrDefault("file", ""); got != "queries/billing.yaml" {
		t.Errorf("unexpected mapping file: %q", got)
	}
}

func TestBuilder_AttrOverwrites(t *testing.T) {
	node := New("facility").
		Attr("defaultFlushMode", "auto").
		Attr("defaultFlushMode", "commit").
		Node()

	if got := node.AttrDefault("defaultFlushMode", ""); got != "commit" {
		t.Errorf("expected last write to win, got %q", got)
	}
}
