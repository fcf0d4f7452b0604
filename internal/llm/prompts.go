package llm

import "fmt"

// extractionSystem frames every extraction/revision call.
const extractionSystem = "You are an NLP semantic analysis expert, fluent in the PropBank and FrameNet semantic role labeling conventions."

// judgmentSystem frames judgment calls.
const judgmentSystem = "You are an NLP expert who evaluates whether a semantic triplet completely reflects the meaning of a sentence."

// roleCatalog teaches the modifier inventory. Shared by the extraction and
// revision prompts.
const roleCatalog = `=== Core arguments ===
- Subject (ARG0 in PropBank): the agent or experiencer. In "小明跑步", 小明 is the subject.
- Object (ARG1 in PropBank): the patient or theme. In "我读书", 书 is the object.

=== Semantic modifiers (ArgM in PropBank) ===
[Temporal]
- time: a time or period, e.g. "每天", "昨天上午", "yesterday"
- frequency: how often, e.g. "经常", "每次", "often"
[Spatial]
- location: where, e.g. "在公园", "办公室里"
- source: origin, e.g. "从家", "来自日本"
- destination: goal, e.g. "到医院", "to the library"
- direction: heading, e.g. "向北"
[Manner and means]
- manner: how, e.g. "仔细地", "quickly"
- tool: instrument or means, e.g. "用笔", "通过电话"
- attribute: descriptive property, e.g. "很大的", "蓝色的"
[Causality and purpose]
- cause: reason, e.g. "由于下雨", "because he was sick"
- purpose: intent, e.g. "为了学习", "in order to rest"
[Degree and modality]
- degree: extent, e.g. "非常", "一点点"
- modal: possibility or necessity, e.g. "可能", "必须", "must"
- negation: e.g. "没有", "不", "not"`

// outputContract states the exact wire format the codec parses.
const outputContract = `=== Output format ===
{key1="value1", key2="value2", ...} Predicate(Subject, Object)

Rules:
- The braces hold every modifier you identified; omit the braces when there are none.
- Predicate is the verb or event name (required).
- Write null for an absent Subject or Object.
- Keep adjectives and quantifiers inside the Subject/Object text: "那个高大的男人" stays "高大的男人", never a separate attribute modifier.
- Keep locative expressions complete: "在远方的山上", not "山".
- Do not invent arguments or modifiers that are not in the sentence.
- Output only the triplet line, no explanation.`

// extractionExamples are the few-shot demonstrations.
const extractionExamples = `=== Examples ===
"小明每天早上在公园跑步。"
→ {time="每天早上", location="在公园"} 跑步(小明, null)

"她用钉子仔细地钉住了这块木板。"
→ {tool="用钉子", manner="仔细"} 钉住(她, 这块木板)

"由于天气原因，明天的比赛被延期了。"
→ {cause="由于天气原因", time="明天"} 延期(比赛, null)

"Tom quickly walked to the library yesterday."
→ {manner="quickly", time="yesterday", destination="to the library"} walked(Tom, null)

"那个高大的男人在远方的山上看到了一只鸟。"
→ {location="在远方的山上"} 看到(高大的男人, 一只鸟)`

// BuildExtractionPrompt constructs the first-attempt extraction prompt for
// a sentence.
func BuildExtractionPrompt(sentence string) string {
	return fmt.Sprintf(`=== Task ===
Extract a semantic triplet from the following Chinese or English sentence.

%s

%s

%s

=== Sentence ===
"%s"

Output the triplet:`, roleCatalog, outputContract, extractionExamples, sentence)
}

// BuildRevisionPrompt constructs the revision prompt: the sentence, the
// previous triplet and the validator's feedback.
func BuildRevisionPrompt(sentence, previousTriplet, feedback string) string {
	return fmt.Sprintf(`=== Task ===
Your previous triplet for this sentence failed validation. Re-analyze the
sentence and output a corrected triplet that fixes every reported issue,
captures all semantic modifiers, and lets the sentence be recovered from
the triplet.

=== Sentence ===
"%s"

=== Previous triplet ===
%s

=== Validation feedback ===
%s

%s

Output only the corrected triplet:`, sentence, previousTriplet, feedback, outputContract)
}

// BuildJudgmentPrompt constructs the oracle-judgment prompt asking for a
// structured verdict over a (sentence, triplet) pair.
func BuildJudgmentPrompt(sentence, serializedTriplet string) string {
	return fmt.Sprintf(`Evaluate whether the following triplet completely reflects the meaning of the sentence.

Sentence: "%s"

Extracted triplet: %s

Consider:
1. Does the triplet capture the core semantics of the sentence?
2. Is any important information missing?
3. Could the sentence be recovered from this triplet?

Answer with exactly this JSON shape:
{
  "complete": true/false,
  "missing_info": ["...", "..."],
  "recoverable": true/false,
  "suggestions": ["...", "..."]
}

Verdict:`, sentence, serializedTriplet)
}
