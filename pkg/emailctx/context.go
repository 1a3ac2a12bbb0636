package emailctx

import "time"

// DefaultLogoURL is used when no logo link is configured for a context.
const DefaultLogoURL = "https://i.imgur.com/UHKz2jA.png"

// UserProfile describes the account holder receiving the email.
// Zero-value fields are replaced with documented defaults by Normalize.
type UserProfile struct {
	UserID               string
	UserName             string // default "Friend"
	UserEmail            string
	FirstName            string
	LastName             string
	AccountCreatedDate   time.Time
	LastLoginDate        time.Time
	Timezone             string // default "UTC"
	PreferredLanguage    string // default "en"
	ReferralCode         string
	ReferredFriendsCount int
	AccountAnniversary   time.Time
	StripeCustomerID     string
	PrimaryChildID       string
}

func (p *UserProfile) normalize() {
	if p.UserName == "" {
		p.UserName = "Friend"
	}
	if p.Timezone == "" {
		p.Timezone = "UTC"
	}
	if p.PreferredLanguage == "" {
		p.PreferredLanguage = "en"
	}
}

// ChildProfile describes the child the stories are created for.
type ChildProfile struct {
	ChildID           string
	ChildName         string // default "your little reader"
	ChildAge          int    // 0 means unknown
	BirthDate         time.Time
	Interests         []string
	ReadingLevel      string // default "beginner"
	FavoriteThemes    []string
	AvatarURL         string
	ParentUserID      string
	FavoriteCharacter string
}

func (p *ChildProfile) normalize() {
	if p.ChildName == "" {
		p.ChildName = "your little reader"
	}
	if p.ReadingLevel == "" {
		p.ReadingLevel = "beginner"
	}
}

// Subscription carries billing state for the account.
type Subscription struct {
	SubscriptionID       string
	Name                 string // default "Free Trial"
	Price                string // default "$0.00"
	Status               string // default "trial"
	TrialStartDate       time.Time
	TrialEndDate         time.Time
	TrialDaysRemaining   int
	NextBillingDate      time.Time
	RenewalDate          time.Time
	DaysUntilRenewal     int // 0 means unknown; falls back to TrialDaysRemaining
	CreditsRemaining     int
	CreditsUsedThisMonth int
	MonthlyCreditsLimit  int
	LifetimeValue        float64
	StripeCustomerID     string
	PaymentMethodLast4   string
	DiscountAmount       string
	DiscountPercentage   int
	ActivePromoCode      string
}

func (s *Subscription) normalize() {
	if s.Name == "" {
		s.Name = "Free Trial"
	}
	if s.Price == "" {
		s.Price = "$0.00"
	}
	if s.Status == "" {
		s.Status = "trial"
	}
}

// ReadingActivity aggregates story creation and reading behavior.
type ReadingActivity struct {
	TotalStoriesCreated       int
	TotalStoriesCompleted     int
	ReadingStreak             int
	LongestStreak             int
	AverageReadingTime        int // minutes
	TotalReadingTime          int // minutes
	LastStoryDate             time.Time
	DaysSinceLastStory        int // 0 means unknown
	PeakReadingHour           string
	WeeklyReadingGoal         int // default 3
	WeeklyReadingProgress     int
	StoriesStartedNotFinished int
	FavoriteReadingDay        string
}

func (a *ReadingActivity) normalize() {
	if a.WeeklyReadingGoal == 0 {
		a.WeeklyReadingGoal = 3
	}
}

// StoryMetadata describes a single generated story.
type StoryMetadata struct {
	StoryID              string
	StoryTitle           string // default "Your Personalized Adventure"
	StoryTheme           string // default "Adventure"
	StoryPreviewText     string
	ReadingTime          string // default "10 minutes"
	AgeRange             string // default "5-7"
	CreatedDate          time.Time
	CompletedDate        time.Time
	StoryLink            string // default "#"
	CoverImageURL        string
	StoryThumbnail       string
	KeyLesson            string
	EducationalTopics    []string
	CharacterNames       []string
	IsCompleted          bool
	IsFavorite           bool
	ShareCount           int
	CompletionPercentage int
}

func (s *StoryMetadata) normalize() {
	if s.StoryTitle == "" {
		s.StoryTitle = "Your Personalized Adventure"
	}
	if s.StoryTheme == "" {
		s.StoryTheme = "Adventure"
	}
	if s.ReadingTime == "" {
		s.ReadingTime = "10 minutes"
	}
	if s.AgeRange == "" {
		s.AgeRange = "5-7"
	}
	if s.StoryLink == "" {
		s.StoryLink = "#"
	}
}

// Achievement is a single earned milestone.
type Achievement struct {
	Name string
	Icon string
	Date string
}

// AchievementData aggregates badges and level progress.
type AchievementData struct {
	BadgesEarned            []string
	TotalBadgeCount         int
	NextMilestone           string // default "First Story"
	ProgressToNextMilestone int
	StoriesUntilNextBadge   int // default 1
	ReadingLevelProgress    int
	CurrentLevel            string // default "Beginner Reader"
	NextLevel               string // default "Story Explorer"
	RecentAchievements      []Achievement
}

func (a *AchievementData) normalize() {
	if a.NextMilestone == "" {
		a.NextMilestone = "First Story"
	}
	if a.StoriesUntilNextBadge == 0 {
		a.StoriesUntilNextBadge = 1
	}
	if a.CurrentLevel == "" {
		a.CurrentLevel = "Beginner Reader"
	}
	if a.NextLevel == "" {
		a.NextLevel = "Story Explorer"
	}
}

// EngagementMetrics carries product analytics signals.
type EngagementMetrics struct {
	DaysSinceLastLogin     int
	FavoriteStoryTheme     string
	MostActiveDay          string
	MostActiveTime         string
	EmailOpenRate          float64
	EmailClickRate         float64
	AppSessionsThisWeek    int
	AverageSessionDuration int
	StoriesSharedCount     int
	ReferralCount          int
}

// SuggestedStory is a single story recommendation.
type SuggestedStory struct {
	Title       string
	Description string
	Emoji       string
}

// Recommendations aggregates personalized story suggestions.
type Recommendations struct {
	RecommendedThemes      []string
	TrendingStoryTypes     []string
	AgeAppropriateTopics   []string
	SuggestedStories       []SuggestedStory
	PersonalizedCategories []string
	NextStoryIdeas         []string
}

// FamilyData aggregates household-level reading state.
type FamilyData struct {
	FamilyMembersCount int // default 1
	ChildProfiles      []ChildProfile
	SharedStoriesCount int
	FavoriteCoauthor   string
	FamilyReadingGoal  string
	FamilyAchievements []string
	SiblingsNames      []string
}

func (f *FamilyData) normalize() {
	if f.FamilyMembersCount == 0 {
		f.FamilyMembersCount = 1
	}
}

// Links is the named navigation link set every rendered context exposes.
type Links struct {
	MainCTALink       string
	CreateStoryLink   string
	BrowseStoriesLink string
	ProfileLink       string
	SettingsLink      string
	FeedbackLink      string
	UpgradeLink       string
	UnsubscribeLink   string
	LogoURL           string
}

func (l *Links) normalize() {
	if l.MainCTALink == "" {
		l.MainCTALink = "#"
	}
	if l.CreateStoryLink == "" {
		l.CreateStoryLink = "#"
	}
	if l.BrowseStoriesLink == "" {
		l.BrowseStoriesLink = "#"
	}
	if l.ProfileLink == "" {
		l.ProfileLink = "#"
	}
	if l.SettingsLink == "" {
		l.SettingsLink = "#"
	}
	if l.FeedbackLink == "" {
		l.FeedbackLink = "#"
	}
	if l.UpgradeLink == "" {
		l.UpgradeLink = "#"
	}
	if l.UnsubscribeLink == "" {
		l.UnsubscribeLink = "#"
	}
	if l.LogoURL == "" {
		l.LogoURL = DefaultLogoURL
	}
}

// Occasions carries special-occasion flags for the send date.
// Only IsBirthday, BirthdayDate, HolidayName and SeasonalTheme are projected
// into template variables; the remaining fields inform campaign scheduling.
type Occasions struct {
	IsBirthday        bool
	BirthdayDate      time.Time
	HolidayName       string
	SeasonalTheme     string
	UpcomingBirthday  bool
	DaysUntilBirthday int
}

// Context is the full aggregate of recipient data used to populate one email.
// Every sub-aggregate is always present (never nil) except CurrentStory and
// LastStory, which stay nil when no story applies; Flatten navigates them
// null-safely. A Context belongs to a single render call and must not be
// mutated after handoff to the transformer.
type Context struct {
	User            UserProfile
	Child           ChildProfile
	Subscription    Subscription
	Activity        ReadingActivity
	CurrentStory    *StoryMetadata
	LastStory       *StoryMetadata
	Achievements    AchievementData
	Engagement      EngagementMetrics
	Recommendations Recommendations
	Family          FamilyData

	EmailType    string
	CampaignName string
	SendDate     time.Time // defaults to time.Now()

	Links     Links
	Occasions Occasions
}

// New builds a fully-populated Context from partial input. Absent
// sub-aggregate fields receive their documented defaults so downstream
// flattening never observes an undefined leaf.
func New(c Context) *Context {
	c.User.normalize()
	c.Child.normalize()
	c.Subscription.normalize()
	c.Activity.normalize()
	if c.CurrentStory != nil {
		c.CurrentStory.normalize()
	}
	if c.LastStory != nil {
		c.LastStory.normalize()
	}
	c.Achievements.normalize()
	c.Family.normalize()
	c.Links.normalize()
	if c.SendDate.IsZero() {
		c.SendDate = time.Now()
	}
	return &c
}
