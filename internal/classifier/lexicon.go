package classifier

// Keyword lexicons, the per-word risk table, and the academic term list.
// These are fixed configuration data: the weights were hand-tuned in the
// source rule set and are reproduced as-is, not recalibrated.

// lexiconCategory groups literal terms under a named semantic theme.
// Multi-word terms match as contiguous phrases with word boundaries.
type lexiconCategory struct {
	name  string
	terms []string
}

var spamLexicon = []lexiconCategory{
	{name: "financial", terms: []string{
		"free", "win", "winner", "won", "cash", "prize", "claim", "gift card", "gift",
		"loan", "credit", "rich", "opportunity", "discount", "sale", "off", "$", "€", "£",
		"money", "dollar", "prize", "reward", "casino", "bonus", "investments", "forex",
		"bitcoin", "investment", "earn", "income", "make money", "fast cash", "debt",
		"credit score", "insurance", "mortgage", "refinance", "rates", "funds", "banking",
		"bank account", "transaction", "transfer", "wire", "deposit", "atm", "cashback",
		"lottery", "jackpot", "payout", "wealthy", "millionaire", "financial freedom",
		"collection", "stocks", "investor", "market", "profit", "dividend", "crypto",
		"cryptocurrency", "blockchain", "trading", "trade", "invest", "fortune",
	}},
	{name: "urgency", terms: []string{
		"call now", "limited time", "offer", "urgent", "act now", "limited", "exclusive",
		"today only", "guaranteed", "incredible", "once in a lifetime", "hurry",
		"expires", "deadline", "now", "immediately", "instant", "instantly", "quickly",
		"fast", "rapid", "rush", "time sensitive", "don't wait", "don't delay",
		"before it's too late", "running out", "while supplies last", "final notice",
		"last chance", "closing soon", "only few left", "never again", "one time",
		"don't miss", "today", "act fast", "time is running out",
	}},
	{name: "authority", terms: []string{
		"verify", "verification", "confirm", "confirmation", "validate", "validation",
		"authenticate", "authentication", "secure", "security", "important", "alert",
		"notification", "required", "action required", "update", "upgrade", "maintain",
		"protect", "warning", "caution", "attention", "critical", "official", "authorized",
		"certified", "verified", "approved", "endorsed", "recommended", "compliance",
		"policy", "terms", "agreement", "legal", "law", "regulation", "requirement",
	}},
	{name: "health", terms: []string{
		"viagra", "pills", "weight loss", "diet", "lose weight", "fat", "slim",
		"medication", "pharmacy", "prescription", "drug", "cure", "treatment", "remedy",
		"health", "healthcare", "medical", "doctor", "clinic", "hospital", "therapy",
		"supplement", "vitamin", "herbal", "natural", "organic", "wellness", "fitness",
		"exercise", "workout", "muscle", "strength", "performance", "enhancement",
		"enlargement", "hair loss", "anti-aging", "rejuvenation", "energy", "stamina",
	}},
	{name: "retail", terms: []string{
		"amazon", "walmart", "target", "best buy", "shop", "shopping", "purchase",
		"buy", "order", "product", "merchandise", "item", "goods", "delivery", "shipping",
		"tracking", "shipment", "package", "delivered", "warehouse", "inventory", "stock",
		"customer", "consumer", "client", "satisfaction", "service", "support", "help",
		"assistance", "representative", "agent", "department", "store", "mall", "outlet",
		"clearance", "closeout", "wholesale", "retail", "dealer", "vendor", "supplier",
	}},
	{name: "personal", terms: []string{
		"dating", "singles", "hot", "sexy", "adult", "mature", "romance", "relationship",
		"match", "partner", "mate", "companion", "friend", "dating", "marry", "marriage",
		"bachelor", "bachelorette", "bride", "groom", "wedding", "engagement", "divorce",
		"separated", "lonely", "alone", "single", "meet", "hookup", "date", "sex", "sexual",
	}},
	{name: "marketing", terms: []string{
		"miracle", "secret", "reveal", "discovery", "breakthrough", "revolutionary",
		"innovative", "advanced", "cutting-edge", "state-of-the-art", "next-generation",
		"groundbreaking", "pioneering", "industry-leading", "world-class", "premium",
		"elite", "luxury", "high-end", "superior", "quality", "excellence", "exceptional",
		"outstanding", "remarkable", "incredible", "unbelievable", "amazing", "astonishing",
		"surprising", "shocking", "stunning", "dramatic", "extraordinary", "tremendous",
	}},
	{name: "account", terms: []string{
		"account", "password", "username", "login", "sign-in", "access", "credentials",
		"authentication", "token", "session", "expired", "terminated", "suspended",
		"locked", "blocked", "restricted", "limitation", "exceeded", "quota", "usage",
		"storage", "space", "capacity", "bandwidth", "data", "information", "profile",
		"personal", "identity", "id", "identification", "verify identity", "confirm identity",
	}},
	{name: "action", terms: []string{
		"click", "tap", "press", "select", "choose", "pick", "opt", "subscribe", "unsubscribe",
		"register", "sign up", "enroll", "join", "participate", "engage", "interact",
		"follow", "share", "like", "comment", "post", "upload", "download", "install",
		"activate", "enable", "disable", "deactivate", "remove", "delete", "erase",
		"cancel", "stop", "cease", "halt", "terminate", "end", "begin", "start", "resume",
	}},
	{name: "tech", terms: []string{
		"software", "hardware", "device", "computer", "laptop", "desktop", "tablet",
		"smartphone", "mobile", "app", "application", "program", "system", "network",
		"server", "cloud", "database", "storage", "backup", "restore", "recovery",
		"update", "upgrade", "patch", "fix", "repair", "maintenance", "support",
		"technical", "it", "information technology", "cyber", "digital", "electronic",
		"online", "web", "internet", "website", "webpage", "portal", "platform",
	}},
	{name: "institutions", terms: []string{
		"bank of america", "chase", "wells fargo", "citibank", "capital one",
		"paypal", "visa", "mastercard", "american express", "discover",
		"td bank", "hsbc", "barclays", "santander", "pnc", "bank", "credit union",
		"financial institution", "treasury", "federal", "irs", "tax", "revenue",
		"social security", "medicare", "medicaid", "insurance", "healthcare",
	}},
	{name: "sms_spam", terms: []string{
		"msg", "txt", "text", "reply", "stop", "opt out", "opt-out", "sms",
		"valued customer", "mobile", "phone", "ringtone", "alert", "reminder",
		"service msg", "service message", "shortcode", "short code", "send",
		"message", "texting", "std rates", "standard rates", "apply", "charges may apply",
		"data rates", "msg&data rates", "subscription", "per month", "per wk", "per week",
		"per msg", "per message", "auto renewal", "autorenewal", "recurring",
	}},
}

var callLexicon = []lexiconCategory{
	{name: "robocall", terms: []string{
		"automated", "robot", "press", "1 to speak", "record", "message", "notification",
		"irs", "tax", "government",
	}},
	{name: "telemarketing", terms: []string{
		"promotion", "deal", "offer", "subscribe", "free trial", "discount", "save",
		"vacation", "insurance",
	}},
}

var academicTerms = []string{
	"university", "college", "professor", "faculty", "student", "dean", "chancellor",
	"department", "course", "class", "lecture", "seminar", "workshop", "conference",
	"syllabus", "curriculum", "academic", "scholarship", "fellowship", "grant",
	"research", "study", "lab", "laboratory", "thesis", "dissertation", "paper",
	"journal", "publication", "publish", "author", "review", "peer-review",
	"assignment", "homework", "project", "exam", "test", "quiz", "grading", "grade",
	"deadline", "submission", "present", "presentation", "abstract", "proposal",
	"defense", "committee", "advisor", "mentor", "colleague", "collaborate",
	"collaboration", "survey", "data", "analysis", "methodology", "results",
	"discussion", "conclusion", "references", "bibliography", "citation",
	"admission", "application", "enrollment", "registrar", "financial aid", "bursar",
	"transcript", "credit", "semester", "quarter", "term", "program", "major", "minor",
	"degree", "bachelor", "master", "doctoral", "phd", "certificate", "alumni",
	"graduation", "commencement", "orientation", "accreditation", "board of trustees",
	".edu", "institute", "school",
}

// wordRiskWeights maps individual words to a risk weight in [0,1]. The word
// scorer sums weights over all recognized tokens and normalizes by the total
// word count.
var wordRiskWeights = map[string]float64{
	"you": 0.2, "your": 0.2, "free": 0.8, "now": 0.6, "today": 0.5, "limited": 0.7, "only": 0.4,
	"get": 0.4, "click": 0.8, "here": 0.6, "best": 0.4, "new": 0.3, "amazing": 0.6, "incredible": 0.6,
	"exclusive": 0.6, "guaranteed": 0.7, "instantly": 0.5, "easily": 0.4, "quickly": 0.4, "urgent": 0.9,
	"important": 0.5, "attention": 0.6, "critical": 0.7, "immediately": 0.7, "instant": 0.5, "selected": 0.8,
	"congratulations": 0.9, "won": 0.9, "winner": 0.9, "prize": 0.8, "success": 0.4, "rich": 0.7,
	"wealth": 0.7, "millionaire": 0.8, "risk": 0.5, "buy": 0.4, "order": 0.4, "discount": 0.6,
	"save": 0.5, "money": 0.6, "cash": 0.7, "payment": 0.4, "credit": 0.4, "loan": 0.6, "debt": 0.6,
	"guarantee": 0.6, "refund": 0.4, "satisfaction": 0.4, "secret": 0.7, "trick": 0.7, "hack": 0.7,
	"cheat": 0.8, "offer": 0.5, "special": 0.4, "deal": 0.5, "opportunity": 0.6, "account": 0.4,
	"password": 0.6, "security": 0.4, "login": 0.5, "access": 0.4, "verify": 0.6, "confirm": 0.6,
	"update": 0.4, "link": 0.7, "visit": 0.5, "download": 0.6, "suspended": 0.8,
	"locked": 0.8, "restricted": 0.8, "hold": 0.7, "terminate": 0.8, "cancel": 0.6,
	"lose": 0.6, "expired": 0.7, "bank": 0.2, "paypal": 0.2, "amazon": 0.2, "ebay": 0.2, "apple": 0.2,
	"microsoft": 0.2, "google": 0.2, "revolutionary": 0.6, "breakthrough": 0.6, "ultimate": 0.5,
	"extraordinary": 0.5, "miraculous": 0.7, "genuine": 0.4, "authentic": 0.4,
}
