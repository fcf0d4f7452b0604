package codec

import (
	"testing"

	"github.com/triplex-nlp/triplex/internal/model"
)

func TestParse_FullTriplet(t *testing.T) {
	input := `{time="每天早上", location="在公园"} 跑步(小明, null)`

	got := Parse(input)

	if got.Predicate != "跑步" {
		t.Errorf("Expected predicate 跑步, got %q", got.Predicate)
	}
	if got.Subject != "小明" {
		t.Errorf("Expected subject 小明, got %q", got.Subject)
	}
	if got.Object != "" {
		t.Errorf("Expected absent object, got %q", got.Object)
	}
	if len(got.Mods) != 2 {
		t.Fatalf("Expected 2 mods, got %d", len(got.Mods))
	}
	if got.Mods[0].Role != "time" || got.Mods[0].Value != "每天早上" {
		t.Errorf("Unexpected first mod: %+v", got.Mods[0])
	}
	if got.Mods[1].Role != "location" || got.Mods[1].Value != "在公园" {
		t.Errorf("Unexpected second mod: %+v", got.Mods[1])
	}
	if got.Raw != input {
		t.Errorf("Expected raw text preserved, got %q", got.Raw)
	}
}

func TestParse_FormatReproducesInput(t *testing.T) {
	input := `{time="每天早上", location="在公园"} 跑步(小明, null)`

	if got := Format(Parse(input)); got != input {
		t.Errorf("Format did not reproduce input:\n  in:  %s\n  out: %s", input, got)
	}
}

func TestParse_SoftFailure(t *testing.T) {
	got := Parse("garbage text with no structure")

	if !got.IsEmpty() {
		t.Errorf("Expected empty triplet, got %+v", got)
	}
	if got.Raw != "garbage text with no structure" {
		t.Errorf("Expected raw text preserved, got %q", got.Raw)
	}
}

func TestParse_NoMods(t *testing.T) {
	got := Parse("工作(张三, null)")

	if got.Predicate != "工作" || got.Subject != "张三" || got.Object != "" {
		t.Errorf("Unexpected triplet: %+v", got)
	}
	if len(got.Mods) != 0 {
		t.Errorf("Expected no mods, got %v", got.Mods)
	}
}

func TestParse_NullIsCaseInsensitive(t *testing.T) {
	got := Parse("walked(Tom, NULL)")

	if got.Subject != "Tom" {
		t.Errorf("Expected subject Tom, got %q", got.Subject)
	}
	if got.Object != "" {
		t.Errorf("Expected absent object, got %q", got.Object)
	}
}

func TestParse_UnknownRolesAccepted(t *testing.T) {
	got := Parse(`{beneficiary="为大家"} 做饭(妈妈, null)`)

	if v, ok := got.Mods.Get("beneficiary"); !ok || v != "为大家" {
		t.Errorf("Expected unknown role stored, got %v", got.Mods)
	}
}

func TestParse_SurroundingNoise(t *testing.T) {
	// Model output often wraps the triplet in prose.
	got := Parse("好的，结果如下:\n{tool=\"用钉子\"} 钉住(她, 这块木板)\n以上。")

	if got.Predicate != "钉住" || got.Subject != "她" || got.Object != "这块木板" {
		t.Errorf("Unexpected triplet: %+v", got)
	}
	if v, ok := got.Mods.Get("tool"); !ok || v != "用钉子" {
		t.Errorf("Expected tool mod, got %v", got.Mods)
	}
}

func TestFormat_MissingPredicatePlaceholder(t *testing.T) {
	got := Format(model.Triplet{Subject: "小明"})

	if got != "Unknown(小明, null)" {
		t.Errorf("Expected placeholder call head, got %q", got)
	}
}

func TestFormat_OmitsEmptyModsBlock(t *testing.T) {
	got := Format(model.Triplet{Predicate: "阅读", Subject: "她", Object: "那本书"})

	if got != "阅读(她, 那本书)" {
		t.Errorf("Unexpected format output: %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`{tool="用钉子", manner="仔细"} 钉住(她, 这块木板)`,
		`{manner="quickly", time="yesterday", destination="to the library"} walked(Tom, null)`,
		`{cause="由于天气原因"} 延期(比赛, null)`,
		`延期(null, 比赛)`,
		`学习(我, null)`,
	}

	for _, input := range inputs {
		first := Parse(input)
		second := Parse(Format(first))
		if !first.Equal(second) {
			t.Errorf("Round trip mismatch for %q:\n  first:  %+v\n  second: %+v", input, first, second)
		}
	}
}
