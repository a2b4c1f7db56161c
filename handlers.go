package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func (b *Blog) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := getPosts(b.db)
	if err != nil {
		b.serverError(w, r, err)
		return
	}

	intro, err := getSetting(b.db, settingIntro)
	if err != nil {
		b.serverError(w, r, err)
		return
	}

	b.render(w, r, http.StatusOK, "index.html", map[string]any{
		"Title": "Home",
		"Posts": posts,
		"Intro": intro,
	})
}

func (b *Blog) ShowPost(w http.ResponseWriter, r *http.Request) {
	post := postFromContext(r)
	status := http.StatusOK

	var form commentForm
	var errs fieldErrors

	if r.Method == http.MethodPost {
		var err error
		errs, err = decodeForm(r, &form)
		if err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		if errs == nil {
			user := currentUser(r)
			if user == nil {
				b.flash(r.Context(), "You need to login or register to comment.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			if _, err := createComment(b.db, post.ID, user.ID, form.Comment); err != nil {
				b.serverError(w, r, err)
				return
			}
			form = commentForm{}
		} else {
			status = http.StatusUnprocessableEntity
		}
	}

	comments, err := getCommentsForPost(b.db, post.ID)
	if err != nil {
		b.serverError(w, r, err)
		return
	}

	b.render(w, r, status, "post.html", map[string]any{
		"Title":    post.Title,
		"Post":     post,
		"Comments": comments,
		"Form":     form,
		"Errors":   errs,
	})
}

func (b *Blog) Register(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Title": "Register"}

	if r.Method != http.MethodPost {
		data["Form"] = registerForm{}
		b.render(w, r, http.StatusOK, "register.html", data)
		return
	}

	var form registerForm
	errs, err := decodeForm(r, &form)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	password := form.Password
	form.Password = ""
	data["Form"] = form
	if errs != nil {
		data["Errors"] = errs
		b.render(w, r, http.StatusUnprocessableEntity, "register.html", data)
		return
	}

	existing, err := getUserByEmail(b.db, form.Email)
	if err != nil {
		b.serverError(w, r, err)
		return
	}
	if existing != nil {
		b.alreadyRegistered(w, r)
		return
	}

	hash, err := hashPassword(password)
	if err != nil {
		b.serverError(w, r, err)
		return
	}

	name := cases.Title(language.Und).String(form.Name)
	id, err := createUser(b.db, form.Email, hash, name)
	if errors.Is(err, errDuplicateEmail) {
		b.alreadyRegistered(w, r)
		return
	}
	if err != nil {
		b.serverError(w, r, err)
		return
	}

	if err := b.logIn(r.Context(), &User{ID: id, Email: form.Email, Name: name}); err != nil {
		b.serverError(w, r, err)
		return
	}
	b.log.Info("user registered", zap.Int("user_id", id))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (b *Blog) alreadyRegistered(w http.ResponseWriter, r *http.Request) {
	b.flash(r.Context(), "Email already registered, try logging in instead.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (b *Blog) Login(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Title": "Login"}

	if r.Method != http.MethodPost {
		data["Form"] = loginForm{}
		b.render(w, r, http.StatusOK, "login.html", data)
		return
	}

	var form loginForm
	errs, err := decodeForm(r, &form)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	password := form.Password
	form.Password = ""
	data["Form"] = form
	if errs != nil {
		data["Errors"] = errs
		b.render(w, r, http.StatusUnprocessableEntity, "login.html", data)
		return
	}

	user, err := getUserByEmail(b.db, form.Email)
	if err != nil {
		b.serverError(w, r, err)
		return
	}
	if user == nil {
		b.flash(r.Context(), "That email is not registered, please register to create an account.")
		b.render(w, r, http.StatusOK, "login.html", data)
		return
	}
	if !checkPassword(user.Password, password) {
		b.flash(r.Context(), "Incorrect password, please try again.")
		b.render(w, r, http.StatusOK, "login.html", data)
		return
	}

	if err := b.logIn(r.Context(), user); err != nil {
		b.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (b *Blog) Logout(w http.ResponseWriter, r *http.Request) {
	if err := b.logOut(r.Context()); err != nil {
		b.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (b *Blog) NewPost(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Title": "New Post", "IsEdit": false}

	if r.Method != http.MethodPost {
		data["Form"] = postForm{}
		b.render(w, r, http.StatusOK, "make-post.html", data)
		return
	}

	var form postForm
	errs, err := decodeForm(r, &form)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	data["Form"] = form
	if errs != nil {
		data["Errors"] = errs
		b.render(w, r, http.StatusUnprocessableEntity, "make-post.html", data)
		return
	}

	_, err = createPost(b.db, Post{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
		AuthorID: currentUser(r).ID,
	})
	if errors.Is(err, errDuplicateTitle) {
		data["Errors"] = fieldErrors{"title": "A post with this title already exists."}
		b.render(w, r, http.StatusConflict, "make-post.html", data)
		return
	}
	if err != nil {
		b.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (b *Blog) EditPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("blog_id"))
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := getPostByID(b.db, id)
	if err != nil {
		b.serverError(w, r, err)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	data := map[string]any{
		"Title":  fmt.Sprintf("Editing %q", post.Title),
		"IsEdit": true,
		"Post":   post,
	}

	if r.Method != http.MethodPost {
		data["Form"] = postForm{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			ImgURL:   post.ImgURL,
			Body:     post.Body,
		}
		b.render(w, r, http.StatusOK, "make-post.html", data)
		return
	}

	var form postForm
	errs, err := decodeForm(r, &form)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	data["Form"] = form
	if errs != nil {
		data["Errors"] = errs
		b.render(w, r, http.StatusUnprocessableEntity, "make-post.html", data)
		return
	}

	err = updatePost(b.db, id, Post{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
		AuthorID: currentUser(r).ID,
	})
	if errors.Is(err, errDuplicateTitle) {
		data["Errors"] = fieldErrors{"title": "A post with this title already exists."}
		b.render(w, r, http.StatusConflict, "make-post.html", data)
		return
	}
	if err != nil {
		b.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (b *Blog) DeletePost(w http.ResponseWriter, r *http.Request) {
	post := postFromContext(r)

	if err := deletePost(b.db, post.ID); err != nil {
		b.serverError(w, r, err)
		return
	}
	b.log.Info("post deleted", zap.Int("post_id", post.ID))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (b *Blog) Contact(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Title": "Contact Me"}

	if r.Method != http.MethodPost {
		data["Form"] = contactForm{}
		b.render(w, r, http.StatusOK, "contact.html", data)
		return
	}

	var form contactForm
	errs, err := decodeForm(r, &form)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	data["Form"] = form
	if errs != nil {
		data["Errors"] = errs
		b.render(w, r, http.StatusUnprocessableEntity, "contact.html", data)
		return
	}

	msg := ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Message: form.Message,
	}
	if err := b.mailer.SendContact(r.Context(), msg); err != nil {
		b.log.Error("contact mail failed", zap.Error(err))
		data["MailError"] = "Sorry, your message could not be sent. Please try again later."
		b.render(w, r, http.StatusBadGateway, "contact.html", data)
		return
	}

	data["Sent"] = true
	data["Form"] = contactForm{}
	b.render(w, r, http.StatusOK, "contact.html", data)
}

func (b *Blog) About(w http.ResponseWriter, r *http.Request) {
	about, err := getSetting(b.db, settingAbout)
	if err != nil {
		b.serverError(w, r, err)
		return
	}

	b.render(w, r, http.StatusOK, "about.html", map[string]any{
		"Title": "About Me",
		"About": about,
	})
}

func (b *Blog) Settings(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Title": "Settings"}

	if r.Method != http.MethodPost {
		values, err := getSettings(b.db, settingIntro, settingAbout)
		if err != nil {
			b.serverError(w, r, err)
			return
		}
		data["Form"] = settingsForm{Intro: values[settingIntro], About: values[settingAbout]}
		b.render(w, r, http.StatusOK, "settings.html", data)
		return
	}

	var form settingsForm
	errs, err := decodeForm(r, &form)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if errs != nil {
		data["Form"] = form
		data["Errors"] = errs
		b.render(w, r, http.StatusUnprocessableEntity, "settings.html", data)
		return
	}

	err = saveSettings(b.db, map[string]string{
		settingIntro: form.Intro,
		settingAbout: form.About,
	})
	if err != nil {
		b.serverError(w, r, err)
		return
	}

	b.flash(r.Context(), "Settings saved.")
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
