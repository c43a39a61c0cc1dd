// Package signals 汇总各数据源的原始数据，生成交给模型的证据包。
package signals

import (
	"regexp"
	"sort"
	"strings"
)

var tokenRe = regexp.MustCompile(`[A-Za-z0-9#@]+`)

// 英文与印尼语停用词
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		the and for with that this you your are but not have has had was were from they their
		our out about into what when where why how its it's a an to of in on at by as or if is
		be been we us me my
		yang dan untuk dengan ini itu kamu kalian kami kita mereka dari ke di pada oleh sebagai
		atau jika adalah sudah belum akan bisa dapat lagi juga lebih kurang baru lama saja aja
		nih yah ya nggak tidak`) {
		stopwords[w] = struct{}{}
	}
}

// ExtractKeywords 统计标题中的关键词，按出现次数降序返回前 topN 个，次数相同按首次出现顺序。
// 词元转为小写并去掉开头的 #，短于 3 个字符或属于停用词的词元会被忽略。
func ExtractKeywords(captions []string, topN int) []string {
	counts := map[string]int{}
	var order []string
	for _, caption := range captions {
		for _, token := range tokenRe.FindAllString(strings.ToLower(caption), -1) {
			token = strings.TrimLeft(token, "#")
			if len(token) < 3 {
				continue
			}
			if _, stop := stopwords[token]; stop {
				continue
			}
			if counts[token] == 0 {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topN {
		order = order[:topN]
	}
	return order
}
