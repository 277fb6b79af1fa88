package catalog

import "texture-matcher/internal/core/texture"

// Foods with recorded EMG chewing data.
var defaultCandidateNames = []string{
	"じゃがりこ",
	"せんべい",
	"タフグミ",
	"ハイチュウプレミアム",
	"茎わかめ",
	"エビ塩揚げせんべい",
	"カルパス",
	"バナナ",
	"マシュマロ",
	"乾パン",
	"豚骨醤油ラーメン",
	"ピザ",
}

var defaultQueries = []string{
	"塩ラーメン",
	"アップルパイ",
	"青椒肉絲",
	"バナナ",
	"リンゴ",
	"根菜チキン サラダラップ",
	"雲丹とカラスミの自家製タリオリーニ チャイブとレモンの香り",
	"きのこクリームのチキン&モッツァレラ 石窯フィローネ",

	// notation variants
	"ドラゴン—ステーキ",
	"ドラゴン/ステーキ?",
	"ドラゴン肉 　ステーキ",
	"ﾄﾞﾗｺﾞﾝ 肉-ｽﾃｰｷ",
	"DＲＡＧＯＮ肉 ステーｷ",

	// odd dishes, several with filtered terms
	"口噛み酒",
	"ドラゴン肉のステーキ",
	"ジュゴンのユッケ",
	"血液とレモン汁のさわやかマリネプレート",
	"人の臓物のミックスホルモン焼き",
	"青酸ソースの肉団子",
	"ボツリヌス発酵キノコスープ",
	"ホモ・サピエンスの胎盤のカルパッチョ ～羊水ソースを添えて～",
	"アオバセセリの幼虫の体液ソース掛けのシーラカンスのポワレ",

	// not food
	"パソコン",
	"シャンプー",
	"ドナルド・トランプ",
}

// DefaultCandidates returns a fresh copy of the built-in candidate list.
func DefaultCandidates() []texture.Candidate {
	return texture.FromNames(defaultCandidateNames)
}

// DefaultQueries returns a fresh copy of the built-in test queries.
func DefaultQueries() []string {
	return append([]string(nil), defaultQueries...)
}

// Default is the built-in catalog.
func Default() Catalog {
	return Catalog{Candidates: DefaultCandidates(), Queries: DefaultQueries()}
}
