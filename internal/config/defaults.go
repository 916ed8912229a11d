package config

// Default returns the built-in configuration for the club's culture-festival
// stand: the member roster, the two festival days, and the venue notes.
// A YAML file passed via --config replaces all of it.
func Default() Config {
	return Config{
		EventName:   "将棋部 文化祭シフトボード",
		AdminSecret: "hidemura",
		Members: []Member{
			{Name: "佐藤", Reading: "さとう"},
			{Name: "鈴木", Reading: "すずき"},
			{Name: "高橋", Reading: "たかはし"},
			{Name: "田中", Reading: "たなか"},
			{Name: "伊藤", Reading: "いとう"},
			{Name: "渡辺", Reading: "わたなべ"},
			{Name: "山本", Reading: "やまもと"},
			{Name: "中村", Reading: "なかむら"},
			{Name: "小林", Reading: "こばやし"},
			{Name: "加藤", Reading: "かとう"},
		},
		Schedule: []ShiftDay{
			{
				Date: "2026-09-19",
				Shifts: []ShiftEntry{
					{Time: "10:00〜12:00", Start: 10, End: 12, Members: []string{"佐藤", "鈴木", "高橋"}},
					{Time: "12:00〜14:00", Start: 12, End: 14, Members: []string{"田中", "伊藤", "渡辺"}},
					{Time: "14:00〜16:00", Start: 14, End: 16, Members: []string{"山本", "中村", "小林", "加藤"}},
				},
			},
			{
				Date: "2026-09-20",
				Shifts: []ShiftEntry{
					{Time: "10:00〜12:00", Start: 10, End: 12, Members: []string{"田中", "山本", "加藤"}},
					{Time: "12:00〜14:00", Start: 12, End: 14, Members: []string{"佐藤", "中村", "小林"}},
					{Time: "14:00〜16:00", Start: 14, End: 16, Members: []string{"鈴木", "高橋", "伊藤", "渡辺"}},
				},
			},
		},
		Notes: []NoteSection{
			{
				Title: "将棋サロンの注意事項",
				Items: []string{
					"対局希望のお客様には **駒落ち** の有無を必ず確認すること。",
					"盤と駒は対局が終わるたびに消毒シートで拭く。",
					"休憩は交代要員が来てから取ること。",
				},
			},
			{
				Title: "わらび餅の注意事項",
				Items: []string{
					"調理担当は **必ず手袋を着用** すること。",
					"売上金は30分ごとに会計係へ渡す。",
					"アレルギー表示のパネルを常に見える位置に置く。",
				},
			},
		},
	}
}
