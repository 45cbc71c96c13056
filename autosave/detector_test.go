package autosave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_SingleKinds(t *testing.T) {
	assert.Equal(t, []Kind{KindDecision}, Detect("We decided to ship weekly."))
	assert.Equal(t, []Kind{KindBug}, Detect("Fixed the nil pointer on startup."))
	assert.Equal(t, []Kind{KindPrompt}, Detect("Here is a reusable prompt for summaries."))
	assert.Equal(t, []Kind{KindRule}, Detect("Rule: keep handlers thin."))
	assert.Equal(t, []Kind{KindReviewFeedback}, Detect("My suggestion: split this into two methods."))
}

func TestDetect_TechViaVocabulary(t *testing.T) {
	kinds := Detect("The service runs on kubernetes with a redis cache.")
	assert.Equal(t, []Kind{KindTech}, kinds)
}

// Kinds are non-exclusive; a dense response yields several in fixed order.
func TestDetect_MultipleKindsOrdered(t *testing.T) {
	text := "Decision: use postgres. This also fixed the login bug. Rule: always wrap errors."
	assert.Equal(t, []Kind{KindDecision, KindBug, KindRule, KindTech}, Detect(text))
}

func TestDetect_Nothing(t *testing.T) {
	assert.Empty(t, Detect("Here is a short poem about autumn."))
	assert.Empty(t, Detect(""))
}
