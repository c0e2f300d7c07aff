// 手动初始化演示数据脚本
//
// 创建一个管理员账号和一门带章节、测验与学习路径的示例课程，
// 用于首次部署后的冒烟验证。重复执行时已存在的账号会被跳过。
//
// 用法: go run scripts/seed.go

package main

import (
	"codelearn_backend/internal/config"
	"codelearn_backend/internal/model"
	"codelearn_backend/internal/repository"
	"codelearn_backend/pkg/database"
	"codelearn_backend/pkg/logger"
	"encoding/json"
	"log"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	quizRepo := repository.NewQuizRepository(db)

	if _, err := userRepo.FindByEmail("admin@codelearn.local"); err == nil {
		log.Println("演示数据已存在，跳过")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码哈希失败: %v", err)
	}
	admin := &model.User{
		Name:     "Admin",
		Email:    "admin@codelearn.local",
		Password: string(hash),
		Role:     model.RoleAdmin,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatalf("创建管理员失败: %v", err)
	}

	course := &model.Course{
		Title:       "Go 入门",
		Description: "从零开始的 Go 语言课程",
		Icon:        "go",
		IsPublished: true,
		CreatorID:   admin.ID,
	}
	if err := courseRepo.Create(course); err != nil {
		log.Fatalf("创建课程失败: %v", err)
	}

	chapters := []*model.Chapter{
		{CourseID: course.ID, Title: "变量与类型", Order: 0, Content: "# 变量与类型\n...", EstimatedMinutes: 15, XPReward: 20},
		{CourseID: course.ID, Title: "流程控制", Order: 1, Content: "# 流程控制\n...", EstimatedMinutes: 20, XPReward: 20},
	}
	for _, ch := range chapters {
		if err := chapterRepo.Create(ch); err != nil {
			log.Fatalf("创建章节失败: %v", err)
		}
	}

	options := func(items ...string) string {
		data, _ := json.Marshal(items)
		return string(data)
	}
	quiz := &model.Quiz{
		CourseID:     course.ID,
		Title:        "基础小测",
		Description:  "变量与流程控制",
		PassingScore: 70,
		XPReward:     50,
		IsPublished:  true,
		Questions: []model.Question{
			{
				Order:         0,
				Type:          model.QuestionTypeMCQ,
				Prompt:        "以下哪个是合法的变量声明？",
				Options:       options("var x int", "int x", "x := := 1", "declare x"),
				CorrectAnswer: 0,
				Explanation:   "Go 使用 var 或短变量声明。",
			},
			{
				Order:         1,
				Type:          model.QuestionTypeTrueFalse,
				Prompt:        "Go 的 for 是唯一的循环关键字。",
				Options:       options("True", "False"),
				CorrectAnswer: model.AnswerTrue,
				Explanation:   "while 和 do-while 都不存在。",
			},
		},
	}
	if err := quizRepo.Create(quiz); err != nil {
		log.Fatalf("创建测验失败: %v", err)
	}

	chapterID0 := chapters[0].ID
	chapterID1 := chapters[1].ID
	quizID := quiz.ID
	entries := []model.LearningPathEntry{
		{CourseID: course.ID, Position: 0, ItemType: model.ItemTypeChapter, ChapterID: &chapterID0},
		{CourseID: course.ID, Position: 1, ItemType: model.ItemTypeChapter, ChapterID: &chapterID1},
		{CourseID: course.ID, Position: 2, ItemType: model.ItemTypeQuiz, QuizID: &quizID},
	}
	if err := courseRepo.ReplacePath(course.ID, entries); err != nil {
		log.Fatalf("写入学习路径失败: %v", err)
	}

	log.Println("演示数据创建完成")
}
