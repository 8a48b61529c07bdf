package selector

// CandidateSet is an ordered list of query expressions for one logical UI
// role. Each entry is semantically equivalent but targets a different known
// markup variant; order encodes preference. A new site variant is an
// additive entry here, never a new branch in control flow.
type CandidateSet struct {
	Role    string
	Queries []string
}

// The tables below mirror the known variants of the fizzo.org UI, desktop
// and mobile, Indonesian and English labels.

var EmailInterstitial = CandidateSet{
	Role: "email interstitial",
	Queries: []string{
		`text="Lanjutkan dengan Email"`,
		`button:has-text("Lanjutkan dengan Email")`,
		`a:has-text("Lanjutkan dengan Email")`,
		`text="Continue with Email"`,
		`button:has-text("Continue with Email")`,
		`a:has-text("Continue with Email")`,
		`text="Email"`,
		`button:has-text("Email")`,
		`a:has-text("Email")`,
	},
}

var EmailField = CandidateSet{
	Role: "email field",
	Queries: []string{
		`input[type="email"]`,
		`input[placeholder*="email"]`,
		`input[name*="email"]`,
		`input[id*="email"]`,
		`input[class*="email"]`,
	},
}

var PasswordField = CandidateSet{
	Role: "password field",
	Queries: []string{
		`input[type="password"]`,
		`input[name*="password"]`,
		`input[id*="password"]`,
		`input[class*="password"]`,
	},
}

var SubmitControl = CandidateSet{
	Role: "submit control",
	Queries: []string{
		`button:has-text("Lanjut")`,
		`input[type="submit"]`,
		`button[type="submit"]`,
		`button:has-text("Login")`,
		`button:has-text("Sign in")`,
		`button:has-text("Masuk")`,
		`button.login-button`,
		`button.submit-button`,
	},
}

var DashboardMarkers = CandidateSet{
	Role: "dashboard marker",
	Queries: []string{
		`text="Profil"`,
		`text="Logout"`,
		`text="Dashboard"`,
		`text="Menulis"`,
		`text="Keluar"`,
	},
}

var StoryInfoMenu = CandidateSet{
	Role: "story info menu",
	Queries: []string{
		`text="Story Info"`,
		`a:has-text("Story Info")`,
		`button:has-text("Story Info")`,
		`text="My Stories"`,
		`a:has-text("My Stories")`,
		`text="Cerita Saya"`,
		`a:has-text("Cerita Saya")`,
	},
}

var NovelItems = CandidateSet{
	Role: "novel item",
	Queries: []string{
		`.novel-list .novel-item`,
		`.story-list .story-item`,
		`.novel-card`,
		`a[href*="novel/"]`,
		`a[href*="story/"]`,
		`.dashboard-stories .story`,
		`.story-card`,
	},
}

var NewChapterButton = CandidateSet{
	Role: "new chapter button",
	Queries: []string{
		`text="New Chapter"`,
		`button:has-text("New Chapter")`,
		`button:has-text("Bab Baru")`,
	},
}

var ChapterTitleField = CandidateSet{
	Role: "chapter title field",
	Queries: []string{
		`input[placeholder*="chapter name"]`,
		`input[placeholder*="Enter chapter"]`,
		`input[name*="title"]`,
		`.chapter-title input`,
	},
}

var ChapterContentField = CandidateSet{
	Role: "chapter content field",
	Queries: []string{
		`textarea[placeholder*="Start writing"]`,
		`textarea[placeholder*="writing here"]`,
		`.editor textarea`,
		`.content-editor textarea`,
		`div[contenteditable="true"]`,
	},
}

var PublishControl = CandidateSet{
	Role: "publish control",
	Queries: []string{
		`button:has-text("✈️")`,
		`button[title*="publish"]`,
		`button[title*="submit"]`,
		`.publish-button`,
		`.submit-button`,
	},
}

var PublishConfirmation = CandidateSet{
	Role: "publish confirmation",
	Queries: []string{
		`text="published"`,
		`text="success"`,
		`text="berhasil"`,
		`.success-message`,
	},
}

// NovelTitle is resolved inside a novel item, not against the page.
const NovelTitle = `.title, .novel-title, h3, h4`

// VisibleInputs is the last-resort query when no candidate resolves a
// credential field: fill the first (email) or second (password) visible
// input on the page.
const VisibleInputs = `input:visible`

// SuccessPathFragments are URL substrings that signal a completed login.
var SuccessPathFragments = []string{"dashboard", "mobile", "home"}
