package generator

import "github.com/aretw0/mindbuffer/pkg/domain"

type lensTemplate struct {
	Title       string
	Description string
}

type actionTemplate struct {
	Title       string
	Description string
	Duration    string
}

var lensBank = map[domain.Language]map[domain.LensType][]lensTemplate{
	domain.LangEnglish: {
		domain.LensGrowth: {
			{"Growth Detective", "What is this situation trying to teach you about your own boundaries or skills?"},
			{"Level Up", "If this were a game level, what XP represent the skill you are gaining right now?"},
		},
		domain.LensSystem: {
			{"Helicopter View", "Zoom out 1000ft. In the grand scheme of your career/life, how big is this really?"},
			{"System Glitch", "Maybe this isn't about you, but a flaw in the process or environment?"},
		},
		domain.LensRelationship: {
			{"The Other Side", "What might the other person be afraid of right now?"},
			{"Compassionate Observer", "If a friend went through this, how would you comfort them?"},
		},
	},
	domain.LangChinese: {
		domain.LensGrowth: {
			{"成长侦探", "这个情况试图教会你关于边界或技能的什么内容？"},
			{"升级时刻", "如果这是一个游戏关卡，你正在获得的经验值代表什么技能？"},
		},
		domain.LensSystem: {
			{"直升机视角", "拉高1000英尺。在你职业生涯/人生的宏大图景中，这真的有那么大吗？"},
			{"系统故障", "也许这与你无关，而是流程或环境的缺陷？"},
		},
		domain.LensRelationship: {
			{"对方视角", "对方现在可能在害怕什么？"},
			{"慈悲观察者", "如果是朋友经历了这些，你会如何安慰他们？"},
		},
	},
	domain.LangJapanese: {
		domain.LensGrowth: {
			{"成長の探偵", "この状況は、あなたの境界線やスキルについて何を教えようとしていますか？"},
			{"レベルアップ", "これがゲームのレベルだとしたら、今得ているXPはどんなスキルを表しますか？"},
		},
		domain.LensSystem: {
			{"ヘリコプタービュー", "1000フィート上空から見てみましょう。人生の壮大な計画の中で、これは本当に大きなことですか？"},
			{"システムの不具合", "これはあなたのせいではなく、プロセスや環境の欠陥かもしれません。"},
		},
		domain.LensRelationship: {
			{"相手の視点", "相手は今、何を恐れているのでしょうか？"},
			{"慈悲深い観察者", "もし友人がこれを経験したら、どう慰めますか？"},
		},
	},
}

var actionBank = map[domain.Language][]actionTemplate{
	domain.LangEnglish: {
		{"4-7-8 Breathing", "Inhale for 4, hold for 7, exhale for 8. Repeat 3 times.", "2 min"},
		{"Shake It Off", "Physically shake your hands and legs to release adrenaline.", "1 min"},
		{"Drink Water", "Drink a full glass of cool water slowly.", "1 min"},
		{"Victory Pose", "Stand in a 'V' pose for 2 minutes to boost testosterone and lower cortisol.", "2 min"},
		{"Gratitude Snap", "Name 3 things you can see right now that you are okay with.", "1 min"},
	},
	domain.LangChinese: {
		{"4-7-8 呼吸法", "吸气4秒，憋气7秒，呼气8秒。重复3次。", "2 分钟"},
		{"甩掉压力", "用力甩动你的双手和双腿，释放肾上腺素。", "1 分钟"},
		{"喝杯水", "慢慢喝下一整杯凉水。", "1 分钟"},
		{"胜利姿势", "站成“V”字形保持2分钟，提升睾酮并降低皮质醇。", "2 分钟"},
		{"感恩快照", "说出你现在能看到的3样你觉得还不错的东西。", "1 分钟"},
	},
	domain.LangJapanese: {
		{"4-7-8 呼吸法", "4秒吸って、7秒止めて、8秒で吐く。3回繰り返す。", "2 分"},
		{"シェイク", "手足を物理的に振って、アドレナリンを放出する。", "1 分"},
		{"水を飲む", "コップ一杯の冷たい水をゆっくり飲む。", "1 分"},
		{"勝利のポーズ", "2分間「V」のポーズをとり、テストステロンを高め、コルチゾールを下げる。", "2 分"},
		{"感謝のスナップ", "今見えているもので、悪くないと思うものを3つ挙げる。", "1 分"},
	},
}

// bankLanguage falls back to English for languages without templates.
func bankLanguage(lang domain.Language) domain.Language {
	if _, ok := lensBank[lang]; ok {
		return lang
	}
	return domain.LangEnglish
}
