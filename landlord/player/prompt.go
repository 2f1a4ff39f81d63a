package player

import (
	"fmt"
	"strings"

	"github.com/ratel-online/landlord/landlord/card"
	"github.com/ratel-online/landlord/landlord/game"
)

var characters = map[string]string{
	"烈焰哥🔥": "你是「烈焰哥」，性格激进、好胜、霸气。你喜欢主动出击，大牌先行，炸弹不留。说话热血张扬。",
	"冰山姐❄️": "你是「冰山姐」，性格冷静稳健，善于防守。你喜欢先出小牌试探，把大牌和炸弹留作后手。说话冷淡理性。",
	"戏精弟🎭": "你是「戏精弟」，性格搞怪，出其不意。你喜欢故意示弱再反杀。说话夸张，爱用网络梗。",
}

const defaultCharacter = "你是一个斗地主玩家，风格均衡。"

func character(name string) string {
	if prompt, ok := characters[name]; ok {
		return prompt
	}
	return defaultCharacter
}

func situation(view game.View) string {
	lines := []string{
		fmt.Sprintf("你的座位号: %d，角色: %s", view.Seat, view.Role.DisplayName()),
		fmt.Sprintf("你的手牌(%d张): %s", len(view.Hand), card.Join(view.Hand)),
	}
	for seat, size := range view.HandSizes {
		if seat != view.Seat {
			lines = append(lines, fmt.Sprintf("玩家%d(%s): %d张", seat, view.Roles[seat].DisplayName(), size))
		}
	}
	if view.Open() {
		lines = append(lines, "当前你是自由出牌，没有需要压的牌")
	} else {
		lines = append(lines, fmt.Sprintf("上一手出牌(玩家%d): %s", view.IncumbentSeat, card.Join(view.Incumbent.Cards)))
	}
	if view.BombCount > 0 {
		lines = append(lines, fmt.Sprintf("本局已出炸弹/火箭: %d个", view.BombCount))
	}
	return strings.Join(lines, "\n")
}

func playPrompt(name string, view game.View) string {
	constraint := "你可以自由出牌，选择任意合法牌型，不能选择 PASS。"
	if !view.Open() {
		constraint = "你必须出比上一手更大的同类型牌，或者出炸弹/火箭。如果没有能压的牌，选择 PASS。"
	}
	return fmt.Sprintf(`%s

你正在玩斗地主。请根据当前局面做出出牌决策。

【当前局面】
%s

【规则约束】
%s
合法牌型：单张、对子、三条、三带一、三带二、顺子(≥5张连续)、连对(≥3对连续)、飞机、飞机带翅膀、四带二、炸弹(4张同点)、火箭(双王)。

【输出格式】严格返回 JSON，不要输出其他内容：
{"action": "play" 或 "pass", "cards": ["♠A", "♥A"], "strategy": "一句话解说你的策略（15字以内）"}`,
		character(name), situation(view), constraint)
}

func bidPrompt(name string, view game.View) string {
	return fmt.Sprintf(`%s

你正在玩斗地主，现在是叫地主阶段。请根据手牌强度决定叫分。

【你的手牌(%d张)】
%s

【当前最高叫分】%d分（你必须叫比这更高的分，或者不叫）
叫分范围：0=不叫, 1分, 2分, 3分

【判断依据】
- 有火箭(双王)：强烈建议叫3分
- 有炸弹(4张同点)：加分项
- 2和A多：加分项
- 手牌散乱无大牌：建议不叫

【输出格式】严格返回 JSON，不要输出其他内容：
{"bid": 0到3的整数, "strategy": "一句话解说你的叫分理由（15字以内）"}`,
		character(name), len(view.Hand), card.Join(view.Hand), view.HighestBid)
}
