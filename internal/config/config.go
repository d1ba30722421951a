package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName          = "Assistant Bot"
	AppID            = "com.github.tartampluch.assistant-bot"
	CommandName      = "assistant-bot"
	LogFileName      = "app.log"
	SettingsFileName = "settings.yaml"
	BookFileName     = "addressbook.vcf"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the address book snapshot, settings and logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// TempFilePattern is used for atomic snapshot writes (temp file + rename).
	TempFilePattern = ".addressbook-*.tmp"

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1

	// SaveTimeout bounds the final snapshot write, which runs even after a signal.
	SaveTimeout = 10 * time.Second
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagBook     = "book"
	FlagLang     = "lang"
	FlagConfig   = "config"
	FlagReminder = "reminder"
	FlagDebug    = "debug"

	FlagDescBook     = "Path to the address book (.vcf, or .db/.sqlite for SQLite)"
	FlagDescLang     = "Language of the assistant messages (en, uk)"
	FlagDescConfig   = "Path to the settings file"
	FlagDescReminder = "ISO8601 reminder trigger for exported calendars (e.g. -P1D)"
	FlagDescDebug    = "Enable debug logging to stderr"

	CmdShort         = "Command-line contact manager with birthday reminders"
	CmdLong          = "Stores names, phone numbers and birthdays, answers line commands and reports upcoming birthdays."
	MsgVersionOutput = "%s version %s (%s, built %s)\n"
)

// -----------------------------------------------------------------------------
// Command Names
// -----------------------------------------------------------------------------

const (
	CmdHello          = "hello"
	CmdAdd            = "add"
	CmdChange         = "change"
	CmdPhone          = "phone"
	CmdAll            = "all"
	CmdAddBirthday    = "add-birthday"
	CmdShowBirthday   = "show-birthday"
	CmdBirthdays      = "birthdays"
	CmdDelete         = "delete"
	CmdRemovePhone    = "remove-phone"
	CmdImport         = "import"
	CmdExportCalendar = "export-calendar"
	CmdHelp           = "help"
	CmdClose          = "close"
	CmdExit           = "exit"
	CmdQuit           = "quit"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome          = "welcome"
	TKeyPrompt           = "prompt"
	TKeyGoodbye          = "goodbye"
	TKeyHello            = "hello"
	TKeyInvalidCommand   = "invalid_command"
	TKeyInputError       = "input_error" // Requires Message
	TKeyContactAdded     = "contact_added"
	TKeyContactUpdated   = "contact_updated"
	TKeyContactNotFound  = "contact_not_found"
	TKeyContactDeleted   = "contact_deleted"
	TKeyPhoneChanged     = "phone_changed" // Requires Name, Old, New
	TKeyPhoneRemoved     = "phone_removed"
	TKeyPhones           = "phones" // Requires Name, Phones
	TKeyNotFound         = "not_found"
	TKeyNoContacts       = "no_contacts"
	TKeyBirthdayAdded    = "birthday_added"    // Requires Name
	TKeyBirthdayShow     = "birthday_show"     // Requires Name, Date
	TKeyBirthdayUnset    = "birthday_unset"    // Requires Name
	TKeyBirthdayUpcoming = "birthday_upcoming" // Requires Name, Date
	TKeyNoBirthdays      = "no_birthdays"
	TKeyImported         = "imported"         // Requires Total, Added, Updated, Skipped
	TKeyCalendarWritten  = "calendar_written" // Requires Count, Path
	TKeyHelp             = "help"
	TKeyEvtSummaryAge    = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth  = "event_summary_birth" // Requires Name
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage = "en"
	UIDSalt         = "assistant-bot-v1-"

	// UpcomingHorizonDays is the width of the "birthdays" window.
	// Matches are strictly after today and strictly before today+horizon.
	UpcomingHorizonDays = 7
)

// SupportedLanguages defines the list of available REPL languages (ISO 639-1).
var SupportedLanguages = []string{"en", "uk"}

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Assistant Bot//Calendar//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "assistantbot"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 24 * time.Hour

	// vCard
	VCardVersion  = "4.0"
	VCardTypeCell = "cell"
	VCardBegin    = "BEGIN:VCARD"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// DateFormatInput is the layout accepted by add-birthday (day-month-year).
	// Single-digit day and month are accepted as well.
	DateFormatInput = "2-1-2006"
	// DateFormatDisplay is the layout used by show-birthday and birthdays.
	DateFormatDisplay = "02.01.2006"

	// Date layouts used for vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// PhoneDigits is the exact length of a valid phone number.
	PhoneDigits = 10

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// File Extensions
	ExtDB      = ".db"
	ExtSQLite  = ".sqlite"
	ExtSQLite3 = ".sqlite3"

	// SQLiteDriver is the database/sql driver name registered by modernc.org/sqlite.
	SQLiteDriver = "sqlite"

	// PhoneSeparator joins phones in display strings.
	PhoneSeparator = "; "
	// FormatRecordDisplay renders a record: name, joined phones.
	FormatRecordDisplay = "Contact name: %s, phones: %s"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrPhoneFormat     = "invalid phone number format: expected exactly 10 digits"
	ErrBirthdayFormat  = "invalid date format: use DD-MM-YYYY"
	ErrPhoneNotFound   = "phone number not found"
	ErrContactNotFound = "contact not found"
	ErrArity           = "wrong number of arguments"
	ErrDateParse       = "unable to parse date"
	ErrBookLoad        = "failed to load address book"
	ErrBookSave        = "failed to save address book"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrVCardEncode     = "failed to encode vCard data"
	ErrVCardNoName     = "vCard has no FN property"
	ErrVCardHeader     = "not a vCard stream: expected BEGIN:VCARD"
	ErrVCardLine       = "malformed vCard line"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDBOpen          = "failed to open database"
	ErrDBSchema        = "failed to initialize database schema"
	ErrDBQuery         = "database query failed"
	ErrSettingsRead    = "failed to read settings"
	ErrSettingsParse   = "failed to parse settings"
	ErrSettingsWrite   = "failed to write settings"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrConfigDir       = "could not determine user config dir"
	ErrCreateDir       = "could not create directory"
	ErrAppFailed       = "application failed unexpectedly"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrReadInput       = "failed to read input"
	ErrFileOpen        = "failed to open file"
	ErrFileWrite       = "failed to write file"
	ErrHandlerPanic    = "internal error"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, leaving command loop"
	MsgBookLoaded    = "Address book loaded"
	MsgBookSaved     = "Address book saved"
	MsgBookMissing   = "Address book not found, starting empty"
	MsgCommand       = "Command handled"
	MsgCommandFailed = "Command failed"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedPhone  = "Skipping invalid phone number"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgImportDone    = "vCard import finished"
	MsgGenSuccess    = "Calendar generation successful"
	MsgSettingsLoad  = "Settings loaded"
	MsgLangFallback  = "Unsupported language, using the default"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyValue     = "value"
	LogKeyName      = "name"
	LogKeyCount     = "count"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyAdded     = "added"
	LogKeyUpdated   = "updated"
	LogKeySkipped   = "skipped"
	LogKeyFound     = "birthdays_found"
	LogKeyBackend   = "backend"
	LogKeyDuration  = "duration_ms"
	LogKeyStack     = "stack"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain      = "main"
	CompAssistant = "assistant"
	CompStorage   = "storage"
	CompCalendar  = "calendar"
	CompI18n      = "i18n"
	CompSettings  = "settings"
)
