package mcpserver

// RecipeFormatURI identifies the recipe format resource.
const RecipeFormatURI = "smartchef://recipe-format"

// RecipeFormatContract describes the Markdown layout that recipe bodies
// should follow so that their sections can be extracted.
const RecipeFormatContract = `# SmartChef Recipe Format

Recipes are stored as Markdown files named ` + "`" + `{name}_{YYYYMMDD_HHMMSS}.md` + "`" + `
with a flat front-matter block written by the store:

` + "```" + `markdown
---
name: 番茄炒蛋
created_at: 20240101_120000
tags: [AI生成]
---

# 番茄炒蛋
...
` + "```" + `

Pass only the body to ` + "`" + `save_recipe` + "`" + `; the store adds the front matter.

## Body layout

1. The first line is the title: ` + "`" + `# 菜名` + "`" + `.
2. Sections are level-2 or level-3 headings whose text starts with one of
   these keywords:
   - ` + "`" + `## 食材` + "`" + `: ingredients, one ` + "`" + `- ` + "`" + ` bullet per item.
   - ` + "`" + `## 准备步骤` + "`" + ` or ` + "`" + `## 步骤` + "`" + `: steps, numbered (` + "`" + `1.` + "`" + ` or ` + "`" + `1、` + "`" + `) or bulleted.
   - ` + "`" + `## 烹饪技巧` + "`" + `: tips, one bullet per tip.
   - ` + "`" + `## 预计时间` + "`" + `: lines ` + "`" + `- 准备时间: 10 分钟` + "`" + ` and ` + "`" + `- 烹饪时间: 20 分钟` + "`" + `.
3. Any other level-2 heading ends the current section.
4. Missing sections yield empty lists; missing times default to 15 and 30 minutes.

## Example

` + "```" + `markdown
# 番茄炒蛋

## 食材
- 番茄 2个
- 鸡蛋 3个

## 准备步骤
1. 番茄切块，鸡蛋打散
2. 先炒鸡蛋盛出，再炒番茄后合炒

## 烹饪技巧
- 鸡蛋七分熟时出锅

## 预计时间
- 准备时间: 5 分钟
- 烹饪时间: 10 分钟
` + "```" + `
`
