package catalog

import "fmt"

// SubCourseContent is one piece of learning material attached to a chapter
type SubCourseContent struct {
	Type  string `json:"type"`
	Path  string `json:"path"`
	Label string `json:"label"`
}

// SubCourse is a single chapter of a course. Chapter ids are the parent
// course id times 100 plus the chapter number, so they never collide with
// top-level course ids.
type SubCourse struct {
	ID             uint               `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Duration       string             `json:"duration"`
	Contents       []SubCourseContent `json:"contents"`
	IsSubCourse    bool               `json:"isSubCourse"`
	ParentCourseID uint               `json:"parentCourseId"`
}

// chapter holds the static outline data for one chapter
type chapter struct {
	title       string
	description string
	duration    string
}

var courseChapters = map[uint][]chapter{
	1: { // Java编程基础
		{"Java开发环境搭建", "安装JDK和IDE，配置开发环境", "15分钟"},
		{"Java基础语法", "学习Java的基本语法和数据类型", "20分钟"},
		{"面向对象编程基础", "理解类、对象、封装等OOP概念", "25分钟"},
		{"继承与多态", "掌握Java继承机制和多态特性", "22分钟"},
		{"异常处理机制", "学习Java异常处理的最佳实践", "18分钟"},
		{"集合框架详解", "掌握List、Set、Map等集合的使用", "28分钟"},
		{"IO流操作", "学习文件读写和流操作", "24分钟"},
		{"多线程编程", "理解线程概念和并发编程", "30分钟"},
		{"网络编程基础", "学习Socket编程和HTTP通信", "26分钟"},
		{"数据库连接", "使用JDBC连接和操作数据库", "32分钟"},
	},
	2: { // Android应用开发
		{"Android开发环境", "安装Android Studio和SDK配置", "15分钟"},
		{"Activity生命周期", "理解Activity的生命周期管理", "20分钟"},
		{"UI界面设计", "学习布局管理器和控件使用", "25分钟"},
		{"Intent与组件通信", "掌握组件间的数据传递", "22分钟"},
		{"数据存储方案", "学习SharedPreferences、SQLite等", "28分钟"},
		{"网络请求处理", "使用Retrofit进行网络通信", "24分钟"},
		{"RecyclerView列表", "实现复杂列表和网格布局", "26分钟"},
		{"Fragment使用", "学习Fragment的生命周期和使用", "23分钟"},
		{"多媒体处理", "处理图片、音频和视频", "30分钟"},
		{"应用发布上线", "打包签名和应用商店发布", "18分钟"},
	},
	3: { // 数据结构与算法
		{"数据结构基础概念", "了解数据结构的基本概念和分类", "15分钟"},
		{"线性表的实现", "学习顺序表和链表的实现原理", "20分钟"},
		{"栈与队列详解", "掌握栈和队列的特点及应用", "18分钟"},
		{"树结构基础", "学习二叉树、平衡树等树形结构", "25分钟"},
		{"堆与优先队列", "深入理解堆的性质和实现", "22分钟"},
		{"图的基本概念", "学习图的表示方法和基本术语", "16分钟"},
		{"图的遍历算法", "掌握DFS和BFS遍历算法", "28分钟"},
		{"排序算法原理", "学习各种排序算法的实现", "30分钟"},
		{"查找算法详解", "掌握线性查找、二分查找等", "24分钟"},
		{"算法复杂度分析", "学习时间和空间复杂度分析", "26分钟"},
	},
	4: { // Web前端开发
		{"HTML基础标签", "学习HTML的基本标签和语义化", "12分钟"},
		{"CSS样式设计", "掌握CSS选择器和样式属性", "18分钟"},
		{"CSS布局技术", "学习Flexbox和Grid布局", "22分钟"},
		{"JavaScript基础", "掌握JS基本语法和数据类型", "20分钟"},
		{"DOM操作详解", "学习DOM元素的增删改查", "25分钟"},
		{"事件处理机制", "理解事件冒泡和事件委托", "16分钟"},
		{"AJAX异步请求", "学习异步数据获取和处理", "24分钟"},
		{"响应式设计", "实现移动端适配和响应式布局", "28分钟"},
		{"前端框架入门", "了解Vue.js或React基础", "30分钟"},
		{"项目实战练习", "完成一个完整的前端项目", "35分钟"},
	},
	5: { // Python人工智能入门
		{"Python环境搭建", "安装Python和开发环境配置", "12分钟"},
		{"Python基础语法", "掌握Python的基本语法", "25分钟"},
		{"函数与模块", "学习函数定义和模块导入", "20分钟"},
		{"面向对象编程", "理解Python中的类和对象", "28分钟"},
		{"NumPy数值计算", "学习NumPy进行高效数值计算", "22分钟"},
		{"Pandas数据处理", "掌握数据清洗和分析技术", "26分钟"},
		{"Matplotlib可视化", "学习数据可视化图表制作", "18分钟"},
		{"机器学习基础", "了解机器学习的基本概念", "30分钟"},
		{"Scikit-learn实战", "使用机器学习库构建模型", "35分钟"},
		{"深度学习入门", "初步了解神经网络概念", "32分钟"},
		{"TensorFlow基础", "学习深度学习框架使用", "28分钟"},
	},
}

// coursePDF maps a course to its slide deck. All chapters share the demo
// lecture video.
func coursePDF(courseID uint) string {
	switch courseID {
	case 1:
		return "html/book/java.pdf"
	case 2:
		return "html/book/android.pdf"
	case 3:
		return "html/book/algorithm.pdf"
	case 4:
		return "html/book/web.pdf"
	case 5:
		return "html/book/python.pdf"
	default:
		return "html/book/python.pdf"
	}
}

// SubCourses returns the chapter list of a course. Courses without an
// outline get an empty list, never nil.
func (c *Catalog) SubCourses(courseID uint) []SubCourse {
	chapters := courseChapters[courseID]
	pdf := coursePDF(courseID)
	subs := make([]SubCourse, 0, len(chapters))
	for i, ch := range chapters {
		num := uint(i) + 1
		subs = append(subs, SubCourse{
			ID:          courseID*100 + num,
			Title:       fmt.Sprintf("第%d章：%s", num, ch.title),
			Description: ch.description,
			Duration:    ch.duration,
			Contents: []SubCourseContent{
				{Type: "video", Path: "html/book/dui.mp4", Label: "视频讲解"},
				{Type: "pdf", Path: pdf, Label: "课件资料"},
			},
			IsSubCourse:    true,
			ParentCourseID: courseID,
		})
	}
	return subs
}
