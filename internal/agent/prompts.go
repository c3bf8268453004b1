package agent

import (
	"encoding/json"
	"fmt"
)

func plannerPrompt(request string, steps []Step) string {
	past, _ := json.Marshal(steps)
	return fmt.Sprintf(`你的任务是帮助用户根据现有食材和要求创建一个完整的食谱。
这是用户的请求：%s
你已经完成了这些步骤：%s
现在请一步一步思考，确定下一步行动。

可选行动：
- analyze：分析食材，提出可行的菜品
- synthesize：基于分析结果合成详细食谱
- visualize：把食谱整理成美观的 Markdown 并生成图片描述
- done：任务已完成

只返回一个 JSON 对象，格式如下：
{"step": 1, "thoughts": ["..."], "action": "analyze", "content": "交给下一步的内容（可选）"}`, request, past)
}

// stagePrompt returns the prompt for action, or false when the action does
// not run a stage.
func stagePrompt(action, content string) (string, bool) {
	switch action {
	case ActionAnalyze:
		return fmt.Sprintf(`请分析以下食材和菜系要求：%s

你的任务是：
1. 确定主要食材和可能的辅助食材
2. 根据这些食材和指定的菜系，提出3-5个可行的菜品
3. 考虑食材的搭配性、口感互补和菜系的特点
4. 如果有特殊要求或饮食限制，确保遵循这些要求`, content), true
	case ActionSynthesize:
		return fmt.Sprintf(`基于先前的食材分析：%s

请创建一个详细的食谱，包括：
1. 创意且吸引人的菜名
2. 完整的食材清单（包括数量）
3. 逐步的准备和烹饪说明
4. 实用的烹饪技巧和窍门
5. 注意计时、火候和关键步骤的提示

确保食谱符合指定的菜系风格并适合用户的烹饪水平。`, content), true
	case ActionVisualize:
		return fmt.Sprintf(`请将以下食谱内容转换为美观的 Markdown 格式：%s

格式要求：
1. 第一行使用 "# 菜名" 作为标题
2. 使用 Markdown 标题、列表和其他格式元素
3. 清晰地分隔食材部分和步骤部分
4. 加入表格或其他形式的时间估计
5. 使食谱既实用又美观`, content), true
	default:
		return "", false
	}
}
