package prompt

import (
	"strings"
	"testing"

	"github.com/azizmatyakubov/flirtkey/internal/coach"
	"github.com/azizmatyakubov/flirtkey/internal/tone"
)

func testContact() coach.Contact {
	return coach.Contact{
		ID:                "c-1",
		Name:              "Maya",
		RelationshipStage: coach.StageTalking,
		Culture:           "american",
		Personality:       "sarcastic, outdoorsy",
		Interests:         "climbing, indie films",
		Topics:            "her trip to Peru",
		GreenFlags:        "asks questions back",
		RedFlags:          "slow replies on weekends",
		MessageCount:      14,
	}
}

func TestBuildReplyPrompt(t *testing.T) {
	p := BuildReplyPrompt(testContact(), "hey what's up", "")

	if !strings.Contains(p.System, `"type": "safe|balanced|bold"`) {
		t.Error("system prompt missing suggestion type enum")
	}
	if !strings.Contains(p.System, "280") {
		t.Error("system prompt missing character cap")
	}
	if !strings.Contains(p.System, "ONLY the JSON object") {
		t.Error("system prompt missing JSON-only instruction")
	}
	if !strings.Contains(p.User, "hey what's up") {
		t.Error("user prompt missing her message")
	}
	if !strings.Contains(p.User, "talking") {
		t.Error("user prompt missing relationship stage")
	}
	if !strings.Contains(p.User, "her trip to Peru") {
		t.Error("user prompt missing recent topics")
	}
}

func TestBuildReplyPrompt_CultureOverride(t *testing.T) {
	p := BuildReplyPrompt(testContact(), "hola", "mexican")
	if !strings.Contains(p.User, "mexican") {
		t.Error("explicit culture should override contact culture")
	}
	if strings.Contains(p.User, "american") {
		t.Error("contact culture should be replaced by the override")
	}
}

func TestBuildReplyPrompt_EmptyFieldsBecomeUnknown(t *testing.T) {
	p := BuildReplyPrompt(coach.Contact{}, "hi", "")
	if !strings.Contains(p.User, "unknown") {
		t.Error("blank context fields should render as unknown, not empty")
	}
}

func TestBuildOpenerPrompt_NoFilterRequestsVariety(t *testing.T) {
	p := BuildOpenerPrompt("Loves dogs and bad puns.", nil, false)

	if !strings.Contains(p.System, "casual|witty|flirty|sweet|bold|mysterious") {
		t.Errorf("system prompt should enumerate the full tone catalog:\n%s", p.System)
	}
	if !strings.Contains(p.System, "Vary the tone") {
		t.Error("system prompt should ask for tone variety when unfiltered")
	}
	if strings.Contains(p.System, "explanation") {
		t.Error("explanation field should be omitted when coaching is off")
	}
	if !strings.Contains(p.User, "Loves dogs and bad puns.") {
		t.Error("user prompt missing profile text")
	}
}

func TestBuildOpenerPrompt_ToneFilterNarrows(t *testing.T) {
	witty := tone.Witty
	p := BuildOpenerPrompt("profile", &witty, false)

	if !strings.Contains(p.System, `"tone": "witty"`) {
		t.Errorf("system prompt should pin the tone enum to witty:\n%s", p.System)
	}
	if !strings.Contains(p.System, tone.Catalog[tone.Witty].Prompt) {
		t.Error("system prompt should include the witty catalog fragment")
	}
	if strings.Contains(p.System, "Vary the tone") {
		t.Error("variety instruction should be dropped when a filter is set")
	}
}

func TestBuildOpenerPrompt_CoachingAddsExplanation(t *testing.T) {
	p := BuildOpenerPrompt("profile", nil, true)
	if !strings.Contains(p.System, `"explanation": "string"`) {
		t.Error("coaching mode should add the explanation field to the schema")
	}
	if !strings.Contains(p.System, "why this works") {
		t.Error("coaching mode should instruct the backend to explain each opener")
	}
}

func TestBuildPromptsAreDeterministic(t *testing.T) {
	a := BuildReplyPrompt(testContact(), "hey", "")
	b := BuildReplyPrompt(testContact(), "hey", "")
	if a != b {
		t.Error("BuildReplyPrompt must be deterministic for identical input")
	}

	oa := BuildOpenerPrompt("p", nil, true)
	ob := BuildOpenerPrompt("p", nil, true)
	if oa != ob {
		t.Error("BuildOpenerPrompt must be deterministic for identical input")
	}
}
