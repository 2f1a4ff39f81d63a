package render

import (
	"fmt"

	"github.com/ratel-online/landlord/landlord/card"
	"github.com/ratel-online/landlord/landlord/event"
	"github.com/ratel-online/landlord/rule"
)

// PlayCommentary is the one line shown next to a play on the live view.
func PlayCommentary(e event.HandPlayed) string {
	hand := e.Hand
	switch {
	case e.Remaining == 0:
		return "最后一手牌，直接清空！"
	case hand.Kind == rule.KindRocket:
		return "王炸！一锤定音！"
	case hand.Kind == rule.KindBomb:
		return "炸弹出击！"
	case hand.MainRank >= card.Rank2:
		return "大牌压制！"
	case e.Remaining <= 3:
		return fmt.Sprintf("只剩%d张，准备收尾", e.Remaining)
	case hand.Kind.Chain():
		return fmt.Sprintf("%d连%s，一口气走牌", hand.ChainLength, hand.Kind.DisplayName())
	case hand.MainRank <= card.Rank7:
		return "先出小牌试探"
	}
	return "主动出击"
}

func PassCommentary(incumbent *rule.Hand) string {
	switch {
	case incumbent == nil:
		return ""
	case incumbent.IsBombLike():
		return "对方炸弹太大，忍一手"
	case incumbent.MainRank >= card.RankA:
		return "大牌压不住，选择不出"
	}
	return "暂时不出，等待时机"
}
