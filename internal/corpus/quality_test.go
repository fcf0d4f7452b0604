package corpus

import "testing"

func TestScore_GoodSentences(t *testing.T) {
	sentences := []string{
		"小明每天早上在公园跑步。",
		"她正在图书馆安静地看书。",
		"The committee approved the new budget yesterday afternoon.",
	}

	for _, s := range sentences {
		if score := Score(s); score < 0.7 {
			t.Errorf("expected high score for %q, got %.2f", s, score)
		}
	}
}

func TestScore_LengthPenalty(t *testing.T) {
	short := Score("跑。")
	if short >= 1.0 {
		t.Errorf("expected length penalty for short sentence, got %.2f", short)
	}
}

func TestScore_SpecialCharPenalty(t *testing.T) {
	noisy := Score("@@@###小明跑步$$$%%%^^^&&&")
	clean := Score("小明每天在公园跑步。")
	if noisy >= clean {
		t.Errorf("expected penalty for punctuation noise: noisy=%.2f clean=%.2f", noisy, clean)
	}
}

func TestScore_RepeatedRunPenalty(t *testing.T) {
	repeated := Score("小明说哈哈哈哈哈哈这件事很有意思。")
	normal := Score("小明说这件事很有意思。")
	if repeated >= normal {
		t.Errorf("expected penalty for character run: repeated=%.2f normal=%.2f", repeated, normal)
	}
}

func TestScore_CJKWithoutVerb(t *testing.T) {
	// Noun pile with no verb or copula.
	fragment := Score("红色蓝色绿色黄色紫色")
	clause := Score("天空是蓝色的，草地是绿色的。")
	if fragment >= clause {
		t.Errorf("expected penalty for verbless CJK fragment: fragment=%.2f clause=%.2f", fragment, clause)
	}
}

func TestScore_Empty(t *testing.T) {
	if score := Score(""); score != 0 {
		t.Errorf("expected 0 for empty input, got %.2f", score)
	}
}

func TestHasCharRun(t *testing.T) {
	if !hasCharRun("aaaa", 4) {
		t.Error("expected run of 4 to be detected")
	}
	if hasCharRun("aaab", 4) {
		t.Error("run of 3 should not trip a threshold of 4")
	}
	if hasCharRun("abab", 3) {
		t.Error("alternating characters are not a run")
	}
	if !hasCharRun("前面哈哈哈哈后面", 4) {
		t.Error("expected CJK run to be detected")
	}
}
