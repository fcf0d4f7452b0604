// Package vocab holds the fixed catalogue of semantic roles and the
// per-role trigger keywords used by the validation checks. Roles follow the
// PropBank/FrameNet modifier inventory the extraction prompt teaches.
package vocab

import "strings"

// Role names a semantic role: a core argument or a modifier adjunct.
type Role string

const (
	// Core arguments
	RoleSubject Role = "subject" // ARG0: agent-like
	RoleObject  Role = "object"  // ARG1: patient/theme-like

	// Modifier adjuncts
	RoleTime        Role = "time"
	RoleFrequency   Role = "frequency"
	RoleLocation    Role = "location"
	RoleSource      Role = "source"
	RoleDestination Role = "destination"
	RoleDirection   Role = "direction"
	RoleManner      Role = "manner"
	RoleTool        Role = "tool"
	RoleAttribute   Role = "attribute"
	RoleCause       Role = "cause"
	RolePurpose     Role = "purpose"
	RoleDegree      Role = "degree"
	RoleModal       Role = "modal"
	RoleNegation    Role = "negation"

	// RoleUnknown is the fallback for role names outside the catalogue.
	// Unknown roles are accepted and stored, never rejected.
	RoleUnknown Role = "unknown"
)

// ModifierRoles lists the modifier catalogue in the stable order used for
// expected-role scanning and reporting.
var ModifierRoles = []Role{
	RoleTime,
	RoleFrequency,
	RoleLocation,
	RoleSource,
	RoleDestination,
	RoleDirection,
	RoleManner,
	RoleTool,
	RoleAttribute,
	RoleCause,
	RolePurpose,
	RoleDegree,
	RoleModal,
	RoleNegation,
}

// ParseRole maps a role name onto the catalogue, falling back to
// RoleUnknown for anything it does not recognize.
func ParseRole(name string) Role {
	switch Role(name) {
	case RoleSubject, RoleObject,
		RoleTime, RoleFrequency, RoleLocation, RoleSource, RoleDestination,
		RoleDirection, RoleManner, RoleTool, RoleAttribute, RoleCause,
		RolePurpose, RoleDegree, RoleModal, RoleNegation:
		return Role(name)
	default:
		return RoleUnknown
	}
}

// Vocabulary maps each modifier role to the keywords whose presence in a
// sentence marks that role as expected. Callers may build custom tables;
// the engine takes whatever table it is given.
type Vocabulary struct {
	triggers map[Role][]string
}

// New builds a vocabulary from an explicit trigger table.
func New(triggers map[Role][]string) *Vocabulary {
	copied := make(map[Role][]string, len(triggers))
	for role, words := range triggers {
		copied[role] = append([]string(nil), words...)
	}
	return &Vocabulary{triggers: copied}
}

// Default returns the built-in zh/en trigger table.
//
// The sets are deliberately conservative: a trigger that fires on common
// function words (the adverbial 地, bare English "in") floods every
// sentence with expected roles and makes the completeness check useless.
func Default() *Vocabulary {
	return New(map[Role][]string{
		RoleTime: {
			"每天", "每月", "每年", "每周", "早上", "晚上", "清晨", "午间",
			"昨天", "今天", "明天", "后天", "前天", "今年", "去年", "明年", "当时",
			"yesterday", "today", "tomorrow", "every day", "daily", "weekly",
			"morning", "evening", "last year", "next year",
		},
		RoleFrequency: {
			"经常", "有时", "从不", "每次", "每个周末", "偶尔", "总是",
			"often", "always", "never", "sometimes", "every time",
		},
		RoleLocation: {
			"在", "里", "学校", "公园", "办公室", "医院", "商店", "餐厅", "图书馆",
			" at the ", " in the ", " on the ", " near ",
		},
		RoleSource: {
			"从", "来自",
			" from ",
		},
		RoleDestination: {
			"到", "去往", "前往",
			" to the ",
		},
		RoleDirection: {
			"向", "朝着",
			" toward ", " towards ",
		},
		RoleManner: {
			"仔细", "快速", "缓慢", "小心", "谨慎", "轻轻", "急促", "认真",
			"carefully", "quickly", "slowly", "cautiously", "gently",
		},
		RoleTool: {
			"用", "通过", "借助",
			" with a ", " using ",
		},
		RoleCause: {
			"由于", "因为",
			" because ", " due to ",
		},
		RolePurpose: {
			"为了", "以便",
			" in order to ", " so that ",
		},
		RoleDegree: {
			"非常", "一点点", "完全", "相当",
			" very ", " extremely ", " completely ",
		},
		RoleModal: {
			"可能", "应该", "必须", "可以",
			" must ", " should ", " might ", " may ",
		},
		RoleNegation: {
			"没有", "不会", "无法", "从未",
			" not ", " never ", "n't ",
		},
	})
}

// Triggers returns the trigger keywords for a role.
func (v *Vocabulary) Triggers(role Role) []string {
	return v.triggers[role]
}

// ExpectedRoles returns every modifier role with a trigger keyword occurring
// as a substring of the sentence, in catalogue order. Matching is
// case-insensitive so English triggers fire at sentence starts too.
func (v *Vocabulary) ExpectedRoles(sentence string) []Role {
	lower := strings.ToLower(sentence)
	var expected []Role
	for _, role := range ModifierRoles {
		for _, keyword := range v.triggers[role] {
			if keyword != "" && strings.Contains(lower, keyword) {
				expected = append(expected, role)
				break
			}
		}
	}
	return expected
}
