package providers

// Default returns the built-in provider catalog in registration order. Names
// that TMDB reports for services without a downloader module are listed under
// the Unavailable identity so they never surface as unknown.
func Default() []Identity {
	return []Identity{
		NewIdentity("NETFLIX", []string{"Netflix", "Netflix basic with Ads", "Netflix Kids"}),
		NewIdentity("YouTube MOVIES", []string{
			"YouTube", "YouTube Premium", "YouTube Free", "YouTube Movies",
			"Facebook", "Vimeo", "Instagram", "Twitter", "TikTok", "Dailymotion",
			"NBC", "ABC", "PBS",
		}, withModel(Hybrid), notPurchased()),
		NewIdentity("amazon",
			[]string{"Amazon Prime Video", "Amazon Prime Video with Ads", "Amazon Video", "Amazon Prime"},
			withLogo("/static/images/streaming_logos/Amazon Prime Video with Ads.png"), withModel(Hybrid)),
		NewIdentity("HBO MAX", []string{"HBO Max", "Max", "Max Amazon Channel"}),
		NewIdentity("max", []string{"Max", "Max Amazon Channel", "HBO Max"}),
		NewIdentity("HBO NOW", []string{"HBO Now"}),
		NewIdentity("HBO EUROPE", []string{"HBO Europe"}),
		NewIdentity("hulu", []string{"Hulu", "FXNow"}),
		NewIdentity("DISNEY+", []string{"Disney Plus", "Disney+", "DisneyNOW"}),
		NewIdentity("Paramount+", []string{
			"Paramount Plus", "Paramount+", "Paramount Plus Apple TV Channel",
			"Paramount+ Amazon Channel", "Paramount+ Roku Premium Channel", "Paramount+ with Showtime",
		}),
		NewIdentity("U-NEXT", []string{"U-NEXT"}),
		NewIdentity("tv+",
			[]string{"Apple TV Plus", "Apple TV+", "Apple TV Plus Amazon Channel", "Apple TV"},
			withLogo("/static/images/streaming_logos/Apple TV Plus Amazon Channel.png"), withModel(Hybrid)),
		NewIdentity("ABEMA", []string{"Abema"}),
		NewIdentity("ESPN+", []string{"ESPN Plus", "ESPN+"}, withLogo("/static/images/streaming_logos/ESPN Plus.png")),
		NewIdentity("Rakuten TV", []string{"Rakuten TV"}, withModel(VOD)),
		NewIdentity("discovery+", []string{"Discovery+", "Discovery+ Amazon Channel", "Discovery", "Discovery +"}),
		NewIdentity("FOD", []string{"FOD"}),
		NewIdentity("joyn", []string{"Joyn"}, withModel(FreeWithAds)),
		NewIdentity("RTL+", []string{"RTL+"}),
		NewIdentity("vip", []string{"VIP"}),
		NewIdentity("crunchyroll", []string{"Crunchyroll", "Crunchyroll Amazon Channel"}, withModel(Hybrid)),
		NewIdentity("DMM.com", []string{"DMM.com"}),
		NewIdentity("peacock!",
			[]string{"Peacock", "Peacock Premium", "Peacock Premium Plus"},
			withLogo("/static/images/streaming_logos/Peacock Premium Plus.png"), withModel(Hybrid)),
		NewIdentity("tubi", []string{"Tubi", "Tubi TV"}, withModel(FreeWithAds)),
		NewIdentity("Lemino", []string{"Lemino"}),
		NewIdentity("pluto tv", []string{"Pluto TV"}, withModel(FreeWithAds)),
		NewIdentity("Roku Channel", []string{"Roku Channel", "The Roku Channel"}, withModel(FreeWithAds)),
		NewIdentity("THE CW", []string{"The CW"}, withModel(FreeWithAds)),
		NewIdentity("Stan.", []string{"Stan"}),
		NewIdentity("CANAL+", []string{"Canal+"}),
		NewIdentity("4", []string{"Channel 4", "Channel 4 Plus"}, withModel(FreeWithAds)),
		NewIdentity("CRACKLE", []string{"Crackle"}, withModel(FreeWithAds)),
		NewIdentity("STAR+", []string{"Star+"}),
		NewIdentity("TELASA", []string{"Telasa"}),
		NewIdentity("SkyShowtime", []string{"Sky Showtime"}),

		// Free-to-try modules.
		NewIdentity("NHK+", []string{"NHK+"}, notPurchased()),
		NewIdentity("itvX", []string{"itvX"}, notPurchased()),
		NewIdentity("WOWOW", []string{"WOWOW"}, notPurchased()),
		NewIdentity("TVer", []string{"TVer"}, notPurchased()),
		NewIdentity("WOW", []string{"WOW"}, notPurchased()),
		NewIdentity("NOW", []string{"NOW"}, notPurchased()),
		NewIdentity("dアニメストア", []string{"dアニメストア"}, notPurchased()),
		NewIdentity("ViX", []string{"ViX"}, notPurchased()),
		NewIdentity("FANDANGO AT HOME", []string{"Fandango At Home"}, notPurchased()),

		NewIdentity(UnavailableID, []string{
			// streaming services
			"AMC Plus Apple TV Channel", "AMC+ Amazon Channel", "AMC+ Roku Premium Channel", "AMC",
			"Shudder", "Sundance Now", "MGM+ Amazon Channel", "MGM Plus", "MGM Plus Roku Premium Channel",
			"Starz Apple TV Channel", "Starz Amazon Channel", "Starz Roku Premium Channel", "Starz",
			"Britbox Apple TV Channel", "BritBox Amazon Channel", "BritBox", "Criterion Channel",
			// network tv
			"NBC", "ABC", "CBS", "PBS", "PBS Kids Amazon Channel", "PBS Masterpiece Amazon Channel",
			"BBC America", "USA Network", "TNT", "TBS", "TCM", "Bravo TV", "tru TV", "Freeform",
			"History", "Lifetime",
			// sports
			"ESPN", "fuboTV",
			// rental and purchase
			"Microsoft Store", "Vudu", "VUDU Free",
			// niche
			"MUBI", "MUBI Amazon Channel", "Acorn TV", "AcornTV Amazon Channel", "Shout! Factory TV",
			"Rakuten Viki", "Hoopla", "Kanopy", "Plex", "Plex Channel",
			// other
			"JustWatchTV", "FlixFling", "Spectrum On Demand",
		}),
	}
}
