package category

import "github.com/slihbo/WinTrace/internal/models"

// exactNames maps well-known executable names to their category.
var exactNames = map[string]models.Category{
	"chrome.exe":            models.CategoryBrowsing,
	"firefox.exe":           models.CategoryBrowsing,
	"msedge.exe":            models.CategoryBrowsing,
	"brave.exe":             models.CategoryBrowsing,
	"opera.exe":             models.CategoryBrowsing,
	"code.exe":              models.CategoryDevelopment,
	"devenv.exe":            models.CategoryDevelopment,
	"windowsterminal.exe":   models.CategoryDevelopment,
	"explorer.exe":          models.CategorySystem,
	"taskmgr.exe":           models.CategorySystem,
	"systemsettings.exe":    models.CategorySystem,
	"winword.exe":           models.CategoryProductivity,
	"excel.exe":             models.CategoryProductivity,
	"powerpnt.exe":          models.CategoryProductivity,
	"onenote.exe":           models.CategoryProductivity,
	"outlook.exe":           models.CategoryCommunication,
	"ms-teams.exe":          models.CategoryCommunication,
	"onedrive.exe":          models.CategoryCloud,
	"obs64.exe":             models.CategoryDesignMedia,
	"obs32.exe":             models.CategoryDesignMedia,
	"obs":                   models.CategoryDesignMedia,
	"obs-studio":            models.CategoryDesignMedia,
	"steam.exe":             models.CategoryGames,
	"epicgameslauncher.exe": models.CategoryGames,
}

// keywordRule matches when a word of the extension-less stem starts with one
// of its keywords. Keywords containing a separator are matched against the whole
// stem instead.
type keywordRule struct {
	category models.Category
	keywords []string
}

// keywordRules are evaluated in order; the first match wins.
var keywordRules = []keywordRule{
	{
		category: models.CategoryBrowsing,
		keywords: []string{
			"chrome", "chromium", "firefox", "msedge", "brave", "opera",
			"vivaldi", "safari", "librewolf", "zen-browser",
		},
	},
	{
		category: models.CategoryDevelopment,
		keywords: []string{
			"code", "devenv", "idea", "goland", "pycharm", "webstorm",
			"clion", "rider", "phpstorm", "rustrover", "android studio",
			"sublime", "nvim", "vim", "emacs", "zed", "cursor", "terminal",
			"alacritty", "kitty", "wezterm", "konsole", "powershell",
			"pwsh", "docker", "postman", "git", "insomnia", "dbeaver",
		},
	},
	{
		category: models.CategoryCommunication,
		keywords: []string{
			"slack", "discord", "teams", "zoom", "telegram", "whatsapp",
			"signal", "skype", "thunderbird", "outlook", "mattermost",
			"element",
		},
	},
	{
		category: models.CategoryGames,
		keywords: []string{
			"steam", "epicgames", "battle.net", "riotclient", "minecraft",
			"league of legends", "gog", "lutris", "heroic",
		},
	},
	{
		category: models.CategoryEntertainment,
		keywords: []string{
			"spotify", "vlc", "mpv", "netflix", "music", "itunes",
			"foobar", "potplayer", "youtube", "twitch",
		},
	},
	{
		category: models.CategoryDesignMedia,
		keywords: []string{
			"photoshop", "illustrator", "figma", "blender", "gimp",
			"inkscape", "krita", "premiere", "afterfx", "resolve",
			"davinci", "audacity", "lightroom", "kdenlive",
		},
	},
	{
		category: models.CategoryProductivity,
		keywords: []string{
			"winword", "excel", "powerpnt", "onenote", "notion",
			"obsidian", "acrobat", "libreoffice", "soffice", "evernote",
			"logseq", "todoist", "word", "pages", "numbers", "keynote",
		},
	},
	{
		category: models.CategoryCloud,
		keywords: []string{
			"onedrive", "dropbox", "googledrive", "nextcloud", "icloud",
			"megasync", "syncthing",
		},
	},
	{
		category: models.CategorySystem,
		keywords: []string{
			"explorer", "taskmgr", "systemsettings", "control", "nautilus",
			"dolphin", "thunar", "finder", "gnome-shell", "plasmashell",
			"settings", "mmc", "regedit",
		},
	},
}
