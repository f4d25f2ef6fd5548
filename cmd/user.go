package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/Owenun/Windy/internal/config"
	"github.com/Owenun/Windy/internal/logger"
	"github.com/Owenun/Windy/internal/model"
	"github.com/Owenun/Windy/internal/service"
	"github.com/Owenun/Windy/pkg/auth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	createUsername string
	createPassword string
	createRole     string
)

// userCmd 用户管理命令
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "用户管理命令",
	Long:  `用户管理相关的命令，包括创建用户、列出用户、重置密码`,
}

// createUserCmd 创建用户命令
// 示例：./windy user create --username admin --role admin
var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "创建用户",
	Long:  `创建后台用户，未指定--password时交互式输入密码`,
	Run: func(cmd *cobra.Command, args []string) {
		createUser()
	},
}

// listUsersCmd 列出用户命令
var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "列出用户",
	Run: func(cmd *cobra.Command, args []string) {
		listUsers()
	},
}

// resetPasswordCmd 重置用户密码命令
var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password [username]",
	Short: "重置用户密码",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		resetUserPassword(args[0])
	},
}

func init() {
	createUserCmd.Flags().StringVarP(&createUsername, "username", "u", "", "用户名")
	createUserCmd.Flags().StringVarP(&createPassword, "password", "p", "", "密码")
	createUserCmd.Flags().StringVarP(&createRole, "role", "r", model.RoleAdmin, "角色 (admin/user)")
	_ = createUserCmd.MarkFlagRequired("username")

	// 添加用户相关子命令
	userCmd.AddCommand(createUserCmd)
	userCmd.AddCommand(listUsersCmd)
	userCmd.AddCommand(resetPasswordCmd)

	// 将用户命令添加到根命令
	rootCmd.AddCommand(userCmd)
}

// newUserService 初始化系统后创建账户服务
func newUserService() *service.UserService {
	db, err := initializeSystem()
	if err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}
	return service.NewUserService(db, auth.NewManager(config.GetConfig().JWT), logger.GetSugaredLogger())
}

// readPassword 交互式读取两次密码
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // 换行
	if err != nil {
		return "", fmt.Errorf("读取密码失败: %w", err)
	}

	fmt.Print("请确认密码: ")
	confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // 换行
	if err != nil {
		return "", fmt.Errorf("读取确认密码失败: %w", err)
	}

	if string(passwordBytes) != string(confirmBytes) {
		return "", errors.New("两次输入的密码不一致")
	}
	if len(passwordBytes) == 0 {
		return "", errors.New("密码不能为空")
	}
	return string(passwordBytes), nil
}

// createUser 创建用户
func createUser() {
	if createRole != model.RoleAdmin && createRole != model.RoleUser {
		fmt.Println("角色必须是 admin 或 user")
		return
	}

	password := createPassword
	if password == "" {
		var err error
		if password, err = readPassword("请输入密码: "); err != nil {
			fmt.Println(err)
			return
		}
	}

	userService := newUserService()
	user, err := userService.Create(context.Background(), strings.TrimSpace(createUsername), password, createRole)
	if err != nil {
		fmt.Printf("创建用户失败: %v\n", err)
		return
	}

	fmt.Printf("用户创建成功！\n")
	fmt.Printf("ID: %d\n用户名: %s\n角色: %s\n", user.ID, user.Username, user.Role)
}

// listUsers 列出用户
func listUsers() {
	users, err := newUserService().List(context.Background())
	if err != nil {
		fmt.Printf("查询用户列表失败: %v\n", err)
		return
	}

	fmt.Printf("%-5s %-20s %-8s %-20s\n", "ID", "用户名", "角色", "创建时间")
	fmt.Println(strings.Repeat("-", 60))
	for _, user := range users {
		fmt.Printf("%-5d %-20s %-8s %-20s\n",
			user.ID, user.Username, user.Role, user.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// resetUserPassword 重置用户密码
func resetUserPassword(username string) {
	password, err := readPassword("请输入新密码: ")
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := newUserService().ResetPassword(context.Background(), username, password); err != nil {
		fmt.Printf("重置密码失败: %v\n", err)
		return
	}
	fmt.Printf("用户 %s 的密码重置成功！\n", username)
}
