package registry

// Well-known keys in the global scope, in registration order.
const (
	KeyApp             = "app"
	KeyArgs            = "args"
	KeyMessageBridge   = "message-bridge"
	KeyEditlineBridge  = "editline-bridge"
	KeyConfig          = "config"
	KeyStateStore      = "state-store"
	KeyCrashRecorder   = "crash-recorder"
	KeyModeManager     = "mode-manager"
	KeyWebSettings     = "web-settings"
	KeyBookmarks       = "bookmarks"
	KeyProxy           = "proxy"
	KeyUserScripts     = "user-scripts"
	KeyCookieJar       = "cookie-jar"
	KeyDiskCache       = "disk-cache"
	KeyCommandRunner   = "command-runner"
	KeySearchRunner    = "search-runner"
	KeyCommandHistory  = "command-history"
	KeyDownloadManager = "download-manager"
	KeyMainWindow      = "main-window"
	KeyTabbedView      = "tabbed-view"
	KeyPrompter        = "prompter"
	KeyDebugConsole    = "debug-console"
	KeyKeepaliveTimer  = "keepalive-timer"
)
