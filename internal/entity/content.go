package entity

// ScorableItem is the shared capability the three recommendation scorers
// and the diversification/filter pipeline operate on. The content catalog
// supplies items; the core never mutates them.
type ScorableItem interface {
	ItemID() string
	ItemTopics() []string
	ItemDifficulty() float64
	ItemSkills() []string
	ItemPrerequisites() []string
	ItemMinutes() float64
}

// Lesson is a catalog lesson record.
type Lesson struct {
	ID                string
	Title             string
	Type              string
	Topics            []string
	Skills            []string
	Prerequisites     []string
	Difficulty        float64
	Minutes           float64
	CulturalRelevance float64
	EngagementHistory float64
}

func (l Lesson) ItemID() string              { return l.ID }
func (l Lesson) ItemTopics() []string        { return l.Topics }
func (l Lesson) ItemDifficulty() float64     { return l.Difficulty }
func (l Lesson) ItemSkills() []string        { return l.Skills }
func (l Lesson) ItemPrerequisites() []string { return l.Prerequisites }
func (l Lesson) ItemMinutes() float64        { return l.Minutes }

// VocabularyItem is a catalog vocabulary record.
type VocabularyItem struct {
	ID                string
	Term              string
	Topics            []string
	Difficulty        float64
	Frequency         float64 // corpus frequency, normalized
	Utility           float64 // everyday usefulness, normalized
	Minutes           float64
	CulturalRelevance float64
}

func (v VocabularyItem) ItemID() string              { return v.ID }
func (v VocabularyItem) ItemTopics() []string        { return v.Topics }
func (v VocabularyItem) ItemDifficulty() float64     { return v.Difficulty }
func (v VocabularyItem) ItemSkills() []string        { return nil }
func (v VocabularyItem) ItemPrerequisites() []string { return nil }
func (v VocabularyItem) ItemMinutes() float64        { return v.Minutes }

// PracticeItem is a catalog practice-exercise record.
type PracticeItem struct {
	ID                string
	Kind              string
	Topics            []string
	Skills            []string
	Prerequisites     []string
	Difficulty        float64
	Minutes           float64
	RetentionBenefit  float64
	EngagementHistory float64
	CulturalRelevance float64
}

func (p PracticeItem) ItemID() string              { return p.ID }
func (p PracticeItem) ItemTopics() []string        { return p.Topics }
func (p PracticeItem) ItemDifficulty() float64     { return p.Difficulty }
func (p PracticeItem) ItemSkills() []string        { return p.Skills }
func (p PracticeItem) ItemPrerequisites() []string { return p.Prerequisites }
func (p PracticeItem) ItemMinutes() float64        { return p.Minutes }
