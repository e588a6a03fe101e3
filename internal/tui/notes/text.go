package notes

// User facing messages.
const (
	confirmSwitchNote           = "您正在编辑，确定要切换到其他笔记吗？所有未保存的更改都将丢失。"
	confirmNewNote              = "您正在编辑笔记，切换到新建笔记会丢失当前更改。确定要继续吗？"
	confirmCancelEdit           = "您确定要取消编辑吗？所有未保存的更改都将丢失。"
	loadFailedMessage           = "笔记加载失败，请重试"
	fullContentFailed           = "无法加载笔记完整内容"
	editLoadFailedPrefix        = "加载编辑内容失败: "
	saveFailedPrefix            = "保存失败: "
	savedMessage                = "保存成功！"
	settingsSavedMessage        = "设置已更新！"
	draftNotSaved               = "草稿尚未保存到服务器"
	invalidPageMessage          = "请输入一个有效的页码。"
	pageTooLargeFormat          = "页码不能超过总页数 %d。"
	samePageMessage             = "您已在当前页面。"
	searchFailedMessage         = "搜索失败"
	clipboardUnsupportedMessage = "您的终端不支持自动复制"
	clipboardFailedMessage      = "复制失败，请检查剪贴板权限"
	copiedMessage               = "公开链接已复制！"
	noPublicURLMessage          = "该笔记没有公开链接"
	noNoteMessage               = "请先选择一篇笔记"
	editorFailedMessage         = "编辑器启动失败: "
	externalClosedMessage       = "外部编辑器已关闭，按 ctrl+s 保存"
	convertFailedPrefix         = "内容转换失败: "
)
