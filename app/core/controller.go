package core

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
)

// Controller handle all base methods
type Controller struct {
}

var Config Configuration

// SendJSON marshals v to a json struct and sends appropriate headers to w
func (c *Controller) SendJSON(w http.ResponseWriter, v interface{}, code int) {
	w.Header().Add("Content-Type", "application/json")
	w.Header().Add("Access-Control-Allow-Origin", "*")

	var tmp interface{}
	if _, ok := v.(*ResponseData); ok {
		tmp = v
	} else if _, ok := v.(ResponseData); ok {
		tmp = v
	} else {
		tmp = ResponseData{
			Status: 1,
			Data:   v,
		}
	}

	b, err := json.Marshal(tmp)
	if err != nil {
		log.Print(fmt.Sprintf("Error while encoding JSON: %v", err))
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error": "Internal server error"}`)
	} else {
		w.WriteHeader(code)
		io.WriteString(w, string(b))
	}
}

// SendHTML writes an html fragment response, the format the referral form expects
func (c *Controller) SendHTML(w http.ResponseWriter, body string, code int) {
	w.Header().Add("Content-Type", "text/html")
	w.Header().Add("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	io.WriteString(w, fmt.Sprintf("<html><body>%s</body></html>", body))
}

// GetContent of the request inside given struct
func (c *Controller) GetContent(v interface{}, r *http.Request) error {

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	err = json.Unmarshal(body, v)
	if err != nil {
		log.Println(err)
		return err
	}

	return nil
}

// HandleError write error on response and return false if there is no error
//
// swagger:response HandleError
func (c *Controller) HandleError(err error, w http.ResponseWriter) bool {
	if err == nil {
		return false
	}

	msg := ResponseData{
		Status:  999,
		Message: "An error occured",
		Detail:  err.Error(),
	}

	c.SendJSON(w, &msg, http.StatusInternalServerError)
	return true
}

func (c *Controller) OptionsHandler(w http.ResponseWriter, r *http.Request) {

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Add("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Add("Access-Control-Allow-Methods", "POST, GET, OPTIONS")

	w.WriteHeader(http.StatusOK)
}

func (c *Controller) SendFileWithName(w http.ResponseWriter, r *http.Request, filepath, filename string) {
	w.Header().Add("Content-Disposition", filename)
	w.Header().Add("Access-Control-Allow-Origin", "*")
	w.Header().Add("Access-Control-Expose-Headers", "Content-Disposition,Access-Control-Allow-Origin,")
	http.ServeFile(w, r, filepath)
}

const letterBytes = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPRSTUVWXYZ123456789"
const (
	letterIdxBits = 6                    // 6 bits to represent a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

func RandomString(n int) string {
	b := make([]byte, n)
	// A rand.Int63() generates 63 random bits, enough for letterIdxMax letters!
	for i, cache, remain := n-1, rand.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = rand.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			b[i] = letterBytes[idx]
			i--
		}
		cache >>= letterIdxBits
		remain--
	}

	return string(b)
}

func (c *Controller) GetTmpUploadPath() string {
	return GetTmpUploadPath()
}

func GetTmpUploadPath() string {
	tmpPath := Config.Server.TmpPath
	if tmpPath == "" {
		tmpPath = "./tmp"
	}
	if !strings.HasSuffix(tmpPath, "/") {
		tmpPath += "/"
	}
	tmpPath += RandomString(10) + "/"
	err := os.MkdirAll(tmpPath, 0700)
	if err != nil {
		log.Println(err)
	}
	return tmpPath
}
