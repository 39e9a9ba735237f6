package translate

import "strings"

// commandExplanations maps the first two tokens of a command to a short explanation.
var commandExplanations = map[string]string{
	"git status":     "作業ツリーの状態（変更・ステージ済み・未追跡のファイル）を表示します",
	"git add":        "変更をステージング領域に追加し、次のコミットに含めます",
	"git commit":     "ステージした変更を新しいコミットとして記録します",
	"git push":       "ローカルのコミットをリモートリポジトリに送信します",
	"git pull":       "リモートの変更を取得して現在のブランチにマージします",
	"git fetch":      "リモートの変更を取得しますが、マージはしません",
	"git clone":      "リモートリポジトリをローカルに複製します",
	"git checkout":   "ブランチを切り替えるか、ファイルを復元します",
	"git switch":     "ブランチを切り替えます",
	"git branch":     "ブランチの一覧表示・作成・削除を行います",
	"git merge":      "別のブランチの変更を現在のブランチに統合します",
	"git log":        "コミット履歴を表示します",
	"git diff":       "変更内容の差分を表示します",
	"git stash":      "作業中の変更を一時的に退避します",
	"npm install":    "package.json に記載された依存パッケージをインストールします",
	"npm i":          "package.json に記載された依存パッケージをインストールします",
	"npm run":        "package.json に定義されたスクリプトを実行します",
	"npm test":       "プロジェクトのテストを実行します",
	"npm start":      "プロジェクトの start スクリプトを実行します",
	"npm audit":      "依存パッケージの脆弱性を検査します",
	"npm update":     "依存パッケージを更新します",
	"docker ps":      "実行中のコンテナを一覧表示します",
	"docker images":  "ローカルにあるイメージを一覧表示します",
	"docker run":     "イメージから新しいコンテナを作成して起動します",
	"docker build":   "Dockerfile からイメージをビルドします",
	"docker pull":    "レジストリからイメージを取得します",
	"docker stop":    "実行中のコンテナを停止します",
	"docker logs":    "コンテナのログを表示します",
	"docker exec":    "実行中のコンテナ内でコマンドを実行します",
	"docker compose": "複数のコンテナをまとめて定義・実行します",
	"ls":             "ディレクトリ内のファイル一覧を表示します",
	"pwd":            "現在のディレクトリのパスを表示します",
	"cd":             "作業ディレクトリを移動します",
	"cat":            "ファイルの内容を表示します",
	"mkdir":          "新しいディレクトリを作成します",
	"rm":             "ファイルやディレクトリを削除します",
}

// ExplainCommand returns a static explanation for command.
// The first two tokens are tried first ("git status"), then the first token alone ("ls -la").
func ExplainCommand(command string) (string, bool) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", false
	}
	if len(fields) > 1 {
		if explanation, ok := commandExplanations[fields[0]+" "+fields[1]]; ok {
			return explanation, true
		}
	}
	explanation, ok := commandExplanations[fields[0]]
	return explanation, ok
}
